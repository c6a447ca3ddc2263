// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Host operations
	OpHostConnect Op = "connect to media host"
	OpListingLoad Op = "load media listing"
	OpPrefsLoad   Op = "load preferences"
	OpPrefsSave   Op = "save preferences"

	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackSeek   Op = "seek"
	OpPlaybackResume Op = "resume last item"

	// Progress operations
	OpProgressLoad Op = "load progress"
	OpProgressSave Op = "save progress"

	// Lyrics
	OpLyricsLoad Op = "load lyrics"

	// Local store
	OpStoreOpen Op = "open local store"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Unsupported is shown for items the output cannot preview.
const Unsupported = "This file type cannot be previewed here."

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// WithHint appends an advisory hint to a message.
func WithHint(msg, hint string) string {
	if hint == "" {
		return msg
	}
	if msg == "" {
		return hint
	}
	return msg + " · " + hint
}
