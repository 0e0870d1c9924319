package driver

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/d21d3q/godivecomputer/internal/family"
	"github.com/d21d3q/godivecomputer/internal/options"
	"github.com/d21d3q/godivecomputer/internal/parser"
	"github.com/d21d3q/godivecomputer/internal/status"
)

type fakeParser struct {
	parser.Base
}

func (p *fakeParser) SetData(data []byte) error { p.Reset(data); return nil }

func (p *fakeParser) Datetime() (parser.Datetime, error) {
	return parser.Datetime{}, status.ErrUnsupported
}

func (p *fakeParser) SamplesForeach(parser.SampleFunc) error { return status.ErrUnsupported }

func withRegistered(t *testing.T, f family.Family, ctor Constructor) {
	t.Helper()
	Register(f, ctor)
	t.Cleanup(func() {
		regMu.Lock()
		delete(registry, f)
		regMu.Unlock()
	})
}

func TestLookupUnknownFamily(t *testing.T) {
	_, err := Lookup(family.Null)
	require.ErrorIs(t, err, status.ErrInvalidArgs)

	_, err = New(context.Background(), Params{Family: family.Null})
	require.ErrorIs(t, err, status.ErrInvalidArgs)

	_, err = NewFromName(context.Background(), "no-such-backend")
	require.ErrorIs(t, err, status.ErrInvalidArgs)
}

func TestNewFillsParamsFromContext(t *testing.T) {
	var got Params
	withRegistered(t, family.SuuntoD9, func(params Params) (parser.Parser, error) {
		got = params
		return &fakeParser{Base: parser.NewBase(params.Family, params.Logger)}, nil
	})

	log, _ := test.NewNullLogger()
	ctx := options.WithLogger(context.Background(), log)
	ctx = options.WithClock(ctx, options.Clock{DevTime: 1234, SysTime: 1700000000})

	p, err := New(ctx, Params{Family: family.SuuntoD9, Model: 0x0E})
	require.NoError(t, err)
	require.Equal(t, family.SuuntoD9, p.Family())
	require.Same(t, log, got.Logger)
	require.Equal(t, uint32(1234), got.DevTime)
	require.Equal(t, int64(1700000000), got.SysTime)
	require.Equal(t, uint32(0x0E), got.Model)
	require.Contains(t, Families(), family.SuuntoD9)
}

func TestNewExplicitClockWins(t *testing.T) {
	var got Params
	withRegistered(t, family.SuuntoD9, func(params Params) (parser.Parser, error) {
		got = params
		return &fakeParser{Base: parser.NewBase(params.Family, params.Logger)}, nil
	})

	ctx := options.WithClock(context.Background(), options.Clock{DevTime: 1, SysTime: 2})
	_, err := New(ctx, Params{Family: family.SuuntoD9, DevTime: 10, SysTime: 20})
	require.NoError(t, err)
	require.Equal(t, uint32(10), got.DevTime)
	require.Equal(t, int64(20), got.SysTime)
}

func TestNewNilParser(t *testing.T) {
	withRegistered(t, family.SuuntoD9, func(Params) (parser.Parser, error) {
		return nil, nil
	})
	_, err := New(context.Background(), Params{Family: family.SuuntoD9})
	require.ErrorIs(t, err, status.ErrNoMemory)
	require.Equal(t, "Out of memory", status.Message(err))
}

func TestFamiliesSorted(t *testing.T) {
	noop := func(params Params) (parser.Parser, error) {
		return &fakeParser{Base: parser.NewBase(params.Family, params.Logger)}, nil
	}
	withRegistered(t, family.SuuntoD9, noop)
	withRegistered(t, family.SuuntoSolution, noop)

	fams := Families()
	for i := 1; i < len(fams); i++ {
		require.Less(t, fams[i-1], fams[i])
	}
}
