package port

import "context"

// Launcher hands a URL to the external messaging application. Success of the
// launch is not observable beyond the returned error.
type Launcher interface {
	Open(ctx context.Context, url string) error
}

// Notifier shows transient user-visible confirmations.
type Notifier interface {
	Notify(ctx context.Context, msg string)
}

type NotifierFunc func(ctx context.Context, msg string)

func (f NotifierFunc) Notify(ctx context.Context, msg string) {
	f(ctx, msg)
}
