//go:build !windows

// Package stderr captures output that C audio libraries (ALSA, OSS) write
// straight to file descriptor 2 and forwards it to the logger, so it does
// not corrupt a full-screen terminal UI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Capture redirects fd 2 into a pipe until Stop is called.
type Capture struct {
	orig  int
	read  *os.File
	write *os.File
	done  chan struct{}
	once  sync.Once
}

// Start redirects stderr. Each captured line is logged at warn level.
// On error stderr is left untouched and the program can carry on.
func Start(log logrus.FieldLogger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, read: r, write: w, done: make(chan struct{})}
	go c.forward(log.WithField("component", "stderr"))
	return c, nil
}

func (c *Capture) forward(log logrus.FieldLogger) {
	defer close(c.done)
	scanner := bufio.NewScanner(c.read)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn(line)
		}
	}
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = unix.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr and waits for pending lines to be
// logged. Calling it more than once is a no-op.
func (c *Capture) Stop() {
	c.once.Do(func() {
		fd := int(os.Stderr.Fd())
		_ = unix.Dup2(c.orig, fd)
		_ = unix.Close(c.orig)
		c.write.Close()
		<-c.done
		c.read.Close()
	})
}
