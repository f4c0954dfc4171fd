//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does not
// write warnings to fd 2.
package stderr

// Lines receives captured stderr output. Never written to on Windows.
var Lines = make(chan string)

// Start is a no-op on Windows.
func Start() error {
	return nil
}

// Stop is a no-op on Windows.
func Stop() {}
