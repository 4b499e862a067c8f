// Package notifications delivers optional push notifications about pipeline
// runs to an ntfy-style topic. When no topic is configured the service is a
// noop, so callers never need to branch on whether notifications are enabled.
package notifications
