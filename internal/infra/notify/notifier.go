package notify

import (
	"context"

	"go.uber.org/zap"
)

// Status is the outcome of a notification permission request. All three
// outcomes let the flow proceed; Unsupported is informational only.
type Status string

const (
	StatusGranted     Status = "granted"
	StatusDenied      Status = "denied"
	StatusUnsupported Status = "unsupported"
)

// Notifier is the push capability the core depends on but does not
// implement. Calls are fire-and-forget: callers log failures and move on.
type Notifier interface {
	RequestPermission(ctx context.Context) (Status, error)
	Push(ctx context.Context, title, body string) error
}

// LogNotifier is the server-side notifier. There is no device channel
// here, so pushes land in the structured log; a disabled notifier
// reports the capability as unsupported.
type LogNotifier struct {
	log     *zap.Logger
	enabled bool
}

func NewLogNotifier(log *zap.Logger, enabled bool) *LogNotifier {
	return &LogNotifier{log: log, enabled: enabled}
}

func (n *LogNotifier) RequestPermission(_ context.Context) (Status, error) {
	if !n.enabled {
		return StatusUnsupported, nil
	}
	return StatusGranted, nil
}

func (n *LogNotifier) Push(_ context.Context, title, body string) error {
	if n.log != nil {
		n.log.Info("notification",
			zap.String("title", title),
			zap.String("body", body),
		)
	}
	return nil
}
