package options

import (
	"context"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

type clockKey struct{}

// Clock correlates the device clock with the host clock at download time.
type Clock struct {
	DevTime uint32
	SysTime int64
}

// WithLogger stores the logger used by decoders inside the context.
func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, log)
}

// Logger retrieves the decoder logger from context, defaulting to the logrus
// standard logger.
func Logger(ctx context.Context) logrus.FieldLogger {
	if v := ctx.Value(loggerKey{}); v != nil {
		if log, ok := v.(logrus.FieldLogger); ok {
			return log
		}
	}
	return logrus.StandardLogger()
}

// WithClock stores the device/host clock pair inside the context.
func WithClock(ctx context.Context, clock Clock) context.Context {
	return context.WithValue(ctx, clockKey{}, clock)
}

// ClockFrom retrieves the clock pair if present.
func ClockFrom(ctx context.Context) (Clock, bool) {
	clock, ok := ctx.Value(clockKey{}).(Clock)
	return clock, ok
}
