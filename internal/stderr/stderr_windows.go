//go:build windows

package stderr

import "os"

// Start does nothing on Windows, where the audio backend does not write to
// fd 2.
func Start() error {
	return nil
}

func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop closes Messages.
func Stop() {
	close(Messages)
}
