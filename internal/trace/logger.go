package trace

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to w. LevelOff discards everything.
func New(w io.Writer, level Level) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	if level == LevelOff {
		l.SetOutput(io.Discard)
	} else {
		l.SetOutput(w)
	}
	l.SetLevel(level.logrus())
	return l
}

var nop = New(io.Discard, LevelOff)

type ctxKey struct{}

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l *logrus.Logger) context.Context {
	if l == nil {
		l = nop
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger attached to ctx, or a logger that discards everything.
func FromContext(ctx context.Context) *logrus.Logger {
	if ctx == nil {
		return nop
	}
	if l, ok := ctx.Value(ctxKey{}).(*logrus.Logger); ok {
		return l
	}
	return nop
}
