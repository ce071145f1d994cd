package contactstore

import (
	"context"
	"log/slog"
)

type Kind int

const (
	KindLoading Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a transient message for the user.
type Notice struct {
	Kind    Kind
	Message string
	Err     error
}

type Notifier interface {
	Notify(context.Context, Notice)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(context.Context, Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// LogNotifier writes notices to a logger: loading ones at debug level,
// successes at info and errors at error level.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, notice Notice) {
	level := slog.LevelInfo
	attrs := []slog.Attr{}
	switch notice.Kind {
	case KindLoading:
		level = slog.LevelDebug
	case KindError:
		level = slog.LevelError
		attrs = append(attrs, slog.Any("err", notice.Err))
	}
	n.Logger.LogAttrs(ctx, level, notice.Message, attrs...)
}

var discard = NotifierFunc(func(context.Context, Notice) {}) //nolint: gochecknoglobals
