// Package stderr redirects file descriptor 2 so that diagnostics written by
// the native audio backend (ALSA through oto) end up in the log and the
// status line instead of on top of the terminal UI.
package stderr

import (
	"bufio"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Messages receives captured lines. Lines are dropped when it is full.
var Messages = make(chan string, 100)

// forward reads r line by line until it is closed, logging every line and
// offering it on Messages.
func forward(r io.Reader, log *logrus.Entry) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		log.Debug(line)
		select {
		case Messages <- line:
		default:
		}
	}
}
