// Package textutil provides filename-safe text helpers shared by the media
// store and the CLI output paths.
package textutil
