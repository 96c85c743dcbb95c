package ports

import "context"

// NoticeKind classifies outbound notifications so sinks can gate and style
// them independently.
type NoticeKind string

const (
	NoticeStartup NoticeKind = "startup"
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notifier delivers out-of-band notices (e.g. a chat webhook). Delivery is
// best-effort; callers must treat errors as non-fatal.
type Notifier interface {
	Send(ctx context.Context, kind NoticeKind, message string) error
}

// NopNotifier discards every notice.
type NopNotifier struct{}

func (NopNotifier) Send(context.Context, NoticeKind, string) error {
	return nil
}
