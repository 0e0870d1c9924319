package parser

import (
	"fmt"
	"math"
	"time"

	"github.com/d21d3q/godivecomputer/internal/family"
	"github.com/d21d3q/godivecomputer/internal/field"
	"github.com/d21d3q/godivecomputer/internal/status"
)

// Parser decodes one vendor's dive log format. A Parser is not safe for
// concurrent use; decode concurrently with one instance per goroutine.
type Parser interface {
	// Family identifies the decoder variant.
	Family() family.Family
	// SetData borrows data as the current dive and eagerly recomputes every
	// header-derived fact. Previously cached facts are discarded.
	SetData(data []byte) error
	// Datetime returns the dive start time recorded in the header.
	Datetime() (Datetime, error)
	// Field returns the fact stored under tag. Indexed tags use index.
	Field(tag field.Type, index uint) (any, error)
	// SamplesForeach walks the sample region, calling fn once per
	// (time, kind) pair in buffer order.
	SamplesForeach(fn SampleFunc) error
	// Close releases decoder-private resources.
	Close() error
}

// TimezoneNone marks a datetime whose zone the format does not record.
const TimezoneNone = math.MinInt32

// Datetime is a broken-down device timestamp. Timezone is an offset in
// seconds east of UTC, or TimezoneNone.
type Datetime struct {
	Year     int
	Month    int
	Day      int
	Hour     int
	Minute   int
	Second   int
	Timezone int
}

// HasTimezone reports whether the format recorded the zone.
func (d Datetime) HasTimezone() bool {
	return d.Timezone != TimezoneNone
}

// Time converts d to a time.Time. loc is only used when the datetime carries
// no zone of its own.
func (d Datetime) Time(loc *time.Location) time.Time {
	if d.HasTimezone() {
		loc = time.FixedZone("", d.Timezone)
	} else if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, 0, loc)
}

func (d Datetime) String() string {
	s := fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
	if d.HasTimezone() {
		sign := '+'
		tz := d.Timezone
		if tz < 0 {
			sign = '-'
			tz = -tz
		}
		s += fmt.Sprintf(" %c%02d:%02d", sign, tz/3600, (tz%3600)/60)
	}
	return s
}

// FieldAs fetches a fact and asserts its payload type.
func FieldAs[T any](p Parser, tag field.Type, index uint) (T, error) {
	var zero T
	v, err := p.Field(tag, index)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s holds %T, not %T: %w", tag, v, zero, status.ErrInvalidArgs)
	}
	return out, nil
}

// FieldInto stores a fact into dst, which must be a non-nil pointer to the
// tag's payload type.
func FieldInto(p Parser, tag field.Type, index uint, dst any) error {
	if dst == nil {
		return fmt.Errorf("%s: missing destination: %w", tag, status.ErrInvalidArgs)
	}
	v, err := p.Field(tag, index)
	if err != nil {
		return err
	}
	switch d := dst.(type) {
	case *uint:
		return assign(d, v, tag)
	case *float64:
		return assign(d, v, tag)
	case *field.Mix:
		return assign(d, v, tag)
	case *field.Cylinder:
		return assign(d, v, tag)
	case *field.Density:
		return assign(d, v, tag)
	case *field.Mode:
		return assign(d, v, tag)
	case *field.Text:
		return assign(d, v, tag)
	default:
		return fmt.Errorf("%s: unsupported destination %T: %w", tag, dst, status.ErrInvalidArgs)
	}
}

func assign[T any](dst *T, v any, tag field.Type) error {
	if dst == nil {
		return fmt.Errorf("%s: missing destination: %w", tag, status.ErrInvalidArgs)
	}
	val, ok := v.(T)
	if !ok {
		return fmt.Errorf("%s holds %T, not %T: %w", tag, v, *dst, status.ErrInvalidArgs)
	}
	*dst = val
	return nil
}
