package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/d21d3q/godivecomputer/internal/family"
	"github.com/d21d3q/godivecomputer/internal/field"
)

// Base holds what every decoder shares: the borrowed buffer, the field cache
// and a logger. Decoders embed it and get Family, Field and Close for free.
type Base struct {
	Data   []byte
	Cache  field.Cache
	Log    logrus.FieldLogger
	family family.Family
}

// NewBase returns a Base for the given family. A nil logger falls back to the
// logrus standard logger.
func NewBase(f family.Family, log logrus.FieldLogger) Base {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return Base{
		Log:    log.WithField("family", f.String()),
		family: f,
	}
}

// Family implements Parser.
func (b *Base) Family() family.Family { return b.family }

// Reset borrows data and clears the cache.
func (b *Base) Reset(data []byte) {
	b.Data = data
	b.Cache.Reset()
}

// Field implements Parser by delegating to the cache.
func (b *Base) Field(tag field.Type, index uint) (any, error) {
	return b.Cache.Lookup(tag, index)
}

// Close implements Parser. Decoders with private resources override it.
func (b *Base) Close() error {
	b.Data = nil
	return nil
}
