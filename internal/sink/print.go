package sink

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Print writes each URL to w instead of opening it. Used for dry runs.
type Print struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrint(w io.Writer) *Print {
	return &Print{w: w}
}

func (p *Print) Open(_ context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprintln(p.w, url); err != nil {
		return fmt.Errorf("fmt.Fprintln: %w", err)
	}

	return nil
}
