//go:build !windows

package stderr

import (
	"os"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
)

type capture struct {
	orig  int
	read  *os.File
	write *os.File
}

var (
	mu      sync.Mutex
	current *capture
)

// Start points fd 2 at a pipe. Call it before the speaker is initialised.
// On error nothing is redirected and output keeps going to the terminal.
func Start() error {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	current = &capture{orig: orig, read: r, write: w}
	go forward(r, logrus.WithField("component", "stderr"))
	return nil
}

// WriteOriginal writes msg to the terminal's stderr, bypassing the capture.
func WriteOriginal(msg string) {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(current.orig, []byte(msg))
}

// Stop restores fd 2 and closes Messages.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		return
	}
	_ = syscall.Dup2(current.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(current.orig)
	current.write.Close()
	current.read.Close()
	current = nil
	close(Messages)
}
