package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader provides context-aware line reading that can be
// interrupted, so a pending prompt does not outlive the session.
type LineReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewLineReader creates a new context-aware line reader.
func NewLineReader(reader io.Reader) *LineReader {
	if reader == nil {
		panic("reader cannot be nil")
	}

	return &LineReader{
		reader: bufio.NewReader(reader),
	}
}

// ReadLine reads one line, respecting context cancellation. The result
// is trimmed of surrounding whitespace. A final unterminated line is
// returned without error.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	// The read itself cannot be interrupted, so it runs in a goroutine
	// and the caller returns as soon as the context is done.
	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && res.value != "" {
				return strings.TrimSpace(res.value), nil
			}
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
