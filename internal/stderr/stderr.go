//go:build !windows

// Package stderr captures writes to file descriptor 2. ALSA and other C
// level audio code print warnings straight to fd 2, which would tear up the
// terminal display, so while the UI runs those lines are routed through a
// pipe instead.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

// Lines receives captured stderr output, one line at a time.
var Lines = make(chan string, 100)

var (
	origFd    int
	pipeRead  *os.File
	pipeWrite *os.File
	started   bool
)

// Start redirects fd 2 into a pipe. Call before the audio device is opened.
// On failure the program can continue, output just goes to the real stderr.
func Start() error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origFd, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(origFd)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true

	go func() {
		scanner := bufio.NewScanner(pipeRead)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case Lines <- line:
			default:
				// channel full, drop rather than block the writer
			}
		}
	}()

	return nil
}

// Stop restores the original fd 2 and closes Lines.
func Stop() {
	if !started {
		return
	}

	_ = syscall.Dup2(origFd, int(os.Stderr.Fd()))
	_ = syscall.Close(origFd)

	pipeWrite.Close()
	pipeRead.Close()

	close(Lines)
	started = false
}
