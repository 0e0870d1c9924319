package driver

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/d21d3q/godivecomputer/internal/family"
	"github.com/d21d3q/godivecomputer/internal/options"
	"github.com/d21d3q/godivecomputer/internal/parser"
	"github.com/d21d3q/godivecomputer/internal/status"
)

// Params selects and configures a decoder. Serial and the clock pair are
// opaque except to decoders that correct timestamps.
type Params struct {
	Family  family.Family
	Model   uint32
	Serial  uint32
	DevTime uint32
	SysTime int64
	Logger  logrus.FieldLogger
}

// Constructor builds a decoder instance.
type Constructor func(Params) (parser.Parser, error)

var (
	regMu    sync.RWMutex
	registry = map[family.Family]Constructor{}
)

// Register binds a family to its decoder constructor.
func Register(f family.Family, ctor Constructor) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[f] = ctor
}

// Lookup returns the constructor registered for the family.
func Lookup(f family.Family) (Constructor, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	ctor, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("no parser for family %s: %w", f, status.ErrInvalidArgs)
	}
	return ctor, nil
}

// Families lists the families with a registered decoder.
func Families() []family.Family {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]family.Family, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// New creates the decoder for params.Family. A missing logger is taken from
// ctx.
func New(ctx context.Context, params Params) (parser.Parser, error) {
	ctor, err := Lookup(params.Family)
	if err != nil {
		return nil, err
	}
	if params.Logger == nil {
		params.Logger = options.Logger(ctx)
	}
	if clock, ok := options.ClockFrom(ctx); ok && params.DevTime == 0 && params.SysTime == 0 {
		params.DevTime = clock.DevTime
		params.SysTime = clock.SysTime
	}
	p, err := ctor(params)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("create %s parser: %w", params.Family, status.ErrNoMemory)
	}
	return p, nil
}

// NewFromName resolves a backend name and creates its decoder with the
// backend's default model and no serial number.
func NewFromName(ctx context.Context, name string) (parser.Parser, error) {
	b, ok := family.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown backend %q: %w", name, status.ErrInvalidArgs)
	}
	return New(ctx, Params{Family: b.Family, Model: b.Model})
}
