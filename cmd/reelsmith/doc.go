// Command reelsmith runs the topic-to-video pipeline, either as a long-lived
// HTTP server (serve) or as a one-shot CLI run (generate).
package main
