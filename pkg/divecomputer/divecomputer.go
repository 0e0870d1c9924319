package divecomputer

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/d21d3q/godivecomputer/internal/driver"
	_ "github.com/d21d3q/godivecomputer/internal/driver/deepsix" // register driver
	"github.com/d21d3q/godivecomputer/internal/family"
	"github.com/d21d3q/godivecomputer/internal/field"
	"github.com/d21d3q/godivecomputer/internal/parser"
	"github.com/d21d3q/godivecomputer/internal/status"
)

type (
	Parser      = parser.Parser
	Datetime    = parser.Datetime
	SampleType  = parser.SampleType
	SampleValue = parser.SampleValue
	SampleFunc  = parser.SampleFunc
	Family      = family.Family
	FieldType   = field.Type
	GasMix      = field.Mix
	DiveMode    = field.Mode
)

var (
	ErrInvalidArgs = status.ErrInvalidArgs
	ErrIO          = status.ErrIO
	ErrUnsupported = status.ErrUnsupported
	ErrNoMemory    = status.ErrNoMemory
)

// SampleRecord groups the events of one time tick.
type SampleRecord struct {
	Time        uint     `json:"time" yaml:"time"`
	Depth       *float64 `json:"depth,omitempty" yaml:"depth,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty" yaml:"pressure,omitempty"`
}

// Dive captures the outcome of Parse.
type Dive struct {
	Family    string         `json:"family" yaml:"family"`
	ByteCount int            `json:"byte_count" yaml:"byte_count"`
	Datetime  string         `json:"datetime,omitempty" yaml:"datetime,omitempty"`
	Fields    map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
	Samples   []SampleRecord `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// String renders a human-readable representation of the dive.
func (d Dive) String() string {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Sprintf("family: %s bytes:%d (marshal error: %v)", d.Family, d.ByteCount, err)
	}
	return string(data)
}

// YAML renders the dive as a YAML document.
func (d Dive) YAML() (string, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal dive: %w", err)
	}
	return string(data), nil
}

// NewParser creates the decoder for a family.
func NewParser(ctx context.Context, f Family, opts ParseOptions) (Parser, error) {
	return driver.New(opts.toInternal(ctx), opts.params(f))
}

// Parse decodes one dive buffer of the given family.
func Parse(ctx context.Context, f Family, data []byte) (Dive, error) {
	return ParseWithOptions(ctx, f, data, ParseOptions{})
}

// ParseWithOptions decodes one dive buffer with custom options.
func ParseWithOptions(ctx context.Context, f Family, data []byte, opts ParseOptions) (Dive, error) {
	p, err := NewParser(ctx, f, opts)
	if err != nil {
		return Dive{}, err
	}
	defer p.Close()

	if err := p.SetData(data); err != nil {
		return Dive{}, err
	}
	dive := Dive{
		Family:    f.String(),
		ByteCount: len(data),
		Fields:    collectFields(p),
	}
	dt, err := p.Datetime()
	switch {
	case err == nil:
		dive.Datetime = dt.String()
	case !isUnsupported(err):
		return dive, err
	}

	samples, err := collectSamples(p)
	if err != nil && !isUnsupported(err) {
		return dive, err
	}
	dive.Samples = samples
	return dive, nil
}

// ParseHex decodes a hex dump of a dive buffer for the named backend.
func ParseHex(ctx context.Context, backend, raw string, opts ParseOptions) (Dive, error) {
	b, ok := family.Lookup(backend)
	if !ok {
		return Dive{}, fmt.Errorf("unknown backend %q: %w", backend, ErrInvalidArgs)
	}
	data, err := DecodeHex(raw)
	if err != nil {
		return Dive{}, err
	}
	return ParseWithOptions(ctx, b.Family, data, opts)
}

// LookupFamily resolves a backend name such as "excursion".
func LookupFamily(name string) (Family, bool) {
	b, ok := family.Lookup(name)
	return b.Family, ok
}

// Message returns the human-readable message for an error.
func Message(err error) string {
	return status.Message(err)
}

func collectFields(p Parser) map[string]any {
	fields := map[string]any{}
	put := func(key string, tag FieldType, index uint, conv func(any) any) {
		v, err := p.Field(tag, index)
		if err != nil {
			return
		}
		if conv != nil {
			v = conv(v)
		}
		fields[key] = v
	}
	put("divetime_s", field.DiveTime, 0, nil)
	put("maxdepth_m", field.MaxDepth, 0, nil)
	put("avgdepth_m", field.AvgDepth, 0, nil)
	put("atmospheric_bar", field.Atmospheric, 0, nil)
	put("divemode", field.DiveMode, 0, func(v any) any { return v.(DiveMode).String() })
	put("salinity_density", field.Salinity, 0, func(v any) any { return v.(field.Density).Density })
	put("salinity_type", field.Salinity, 0, func(v any) any { return v.(field.Density).Type.String() })

	if n, err := parser.FieldAs[uint](p, field.GasMixCount, 0); err == nil {
		fields["gasmix_count"] = n
		for i := uint(0); i < n; i++ {
			if mix, err := parser.FieldAs[GasMix](p, field.GasMix, i); err == nil {
				fields[fmt.Sprintf("gasmix_%d_o2", i)] = mix.Oxygen
				fields[fmt.Sprintf("gasmix_%d_he", i)] = mix.Helium
			}
		}
	}
	if n, err := parser.FieldAs[uint](p, field.TankCount, 0); err == nil {
		fields["tank_count"] = n
		for i := uint(0); i < n; i++ {
			if tank, err := parser.FieldAs[field.Cylinder](p, field.Tank, i); err == nil {
				fields[fmt.Sprintf("tank_%d_volume", i)] = tank.Volume
				fields[fmt.Sprintf("tank_%d_begin_bar", i)] = tank.BeginPressure
				fields[fmt.Sprintf("tank_%d_end_bar", i)] = tank.EndPressure
			}
		}
	}
	for i := uint(0); ; i++ {
		s, err := parser.FieldAs[field.Text](p, field.String, i)
		if err != nil {
			break
		}
		fields[fieldKey(s.Desc)] = s.Value
	}
	return fields
}

func collectSamples(p Parser) ([]SampleRecord, error) {
	var records []SampleRecord
	err := p.SamplesForeach(func(kind SampleType, value SampleValue) {
		if kind == parser.SampleTime || len(records) == 0 {
			records = append(records, SampleRecord{Time: value.Time})
		}
		rec := &records[len(records)-1]
		switch kind {
		case parser.SampleDepth:
			rec.Depth = ptr(value.Depth)
		case parser.SampleTemperature:
			rec.Temperature = ptr(value.Temperature)
		case parser.SamplePressure:
			rec.Pressure = ptr(value.Pressure.Value)
		}
	})
	return records, err
}

func isUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

func fieldKey(desc string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return '_'
		}
		return unicode.ToLower(r)
	}, strings.TrimSpace(desc))
}

func ptr(v float64) *float64 {
	return &v
}

// DecodeHex converts a hex dump to bytes. Whitespace, '|' and '_' separators
// and a leading 0x are ignored.
func DecodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(clean, "0X") || strings.HasPrefix(clean, "0x") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex dive must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
