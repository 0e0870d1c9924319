package options

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestLoggerDefault(t *testing.T) {
	require.Equal(t, logrus.StandardLogger(), Logger(context.Background()))
	require.Equal(t, logrus.StandardLogger(), Logger(WithLogger(context.Background(), nil)))
}

func TestLoggerRoundTrip(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx := WithLogger(context.Background(), log)
	require.Same(t, log, Logger(ctx))
}

func TestClock(t *testing.T) {
	_, ok := ClockFrom(context.Background())
	require.False(t, ok)

	ctx := WithClock(context.Background(), Clock{DevTime: 42, SysTime: 1600000000})
	clock, ok := ClockFrom(ctx)
	require.True(t, ok)
	require.Equal(t, uint32(42), clock.DevTime)
}
