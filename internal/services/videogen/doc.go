// Package videogen wraps the text-to-video rendering API used by the
// finalizer stage in render mode.
//
// A render is a single long-running generation call with fixed duration,
// resolution, and inference-step parameters, followed by a download of the
// produced binary. The download carries an explicit bounded timeout; it is
// the one hard upper bound the pipeline imposes on an external call.
package videogen
