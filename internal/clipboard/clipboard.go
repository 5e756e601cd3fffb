// Package clipboard reads and writes text on the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/eora-ai/eora/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error

	// Swapped in tests; the real clipboard needs a display.
	initFn  = clipboard.Init
	readFn  = func() []byte { return clipboard.Read(clipboard.FmtText) }
	writeFn = func(b []byte) { clipboard.Write(clipboard.FmtText, b) }
)

// Init initializes the clipboard. It is safe to call multiple times; only
// the first call does any work.
func Init() error {
	initOnce.Do(func() {
		if err := initFn(); err != nil {
			logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
			initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
		}
	})
	return initErr
}

// ReadText reads text from the clipboard. An empty clipboard is not an error.
func ReadText() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	return string(readFn()), nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	writeFn([]byte(text))
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}
