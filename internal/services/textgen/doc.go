// Package textgen wraps the OpenAI-compatible chat completion API used by
// the text stages of the pipeline.
//
// The client performs exactly one outbound request per call and applies no
// retry policy; provider, network, and authentication failures surface to the
// caller unmodified. The only bound on a hung call is the HTTP client
// timeout.
package textgen
