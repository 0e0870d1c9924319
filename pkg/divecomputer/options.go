package divecomputer

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/d21d3q/godivecomputer/internal/driver"
	internalopts "github.com/d21d3q/godivecomputer/internal/options"
)

// ParseOptions configures decoder selection and logging.
type ParseOptions struct {
	Model   uint32
	Serial  uint32
	DevTime uint32
	SysTime int64
	Logger  logrus.FieldLogger
}

func (opts ParseOptions) toInternal(ctx context.Context) context.Context {
	ctx = internalopts.WithLogger(ctx, opts.Logger)
	if opts.DevTime != 0 || opts.SysTime != 0 {
		ctx = internalopts.WithClock(ctx, internalopts.Clock{DevTime: opts.DevTime, SysTime: opts.SysTime})
	}
	return ctx
}

// params selects the decoder. A zero model means the family's default model.
func (opts ParseOptions) params(f Family) driver.Params {
	model := opts.Model
	if model == 0 {
		model = f.Model()
	}
	return driver.Params{
		Family: f,
		Model:  model,
		Serial: opts.Serial,
	}
}
