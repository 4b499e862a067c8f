// Package pipeline sequences the four generation stages that turn a user
// topic into a short-video artifact: planner (A), scene planner (B), script
// writer (C), and finalizer (D).
//
// Stages run strictly sequentially; each stage's output is the literal input
// to the next. Stage results are delivered incrementally through a Sink as
// they complete, followed by a terminal DONE or ERROR sentinel. Text-stage
// failures abort the run; a render failure in the finalizer degrades into a
// typed MediaOutcome instead, so the caller still sees the upstream text
// artifacts.
package pipeline
