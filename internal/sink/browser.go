// Package sink opens order links in the messaging application.
package sink

import (
	"context"
	"fmt"

	"github.com/pkg/browser"
)

// System hands URLs to the operating system's registered handler
// (tg:// goes to the Telegram client, https:// to the browser).
// Handler output goes to browser.Stdout and browser.Stderr, which the
// process owner sets once at startup.
type System struct{}

func NewSystem() System {
	return System{}
}

func (System) Open(_ context.Context, url string) error {
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("browser.OpenURL: %w", err)
	}

	return nil
}
