package deepsix

import (
	"strconv"

	"github.com/d21d3q/godivecomputer/internal/driver"
	"github.com/d21d3q/godivecomputer/internal/family"
	"github.com/d21d3q/godivecomputer/internal/field"
	"github.com/d21d3q/godivecomputer/internal/frame"
	"github.com/d21d3q/godivecomputer/internal/parser"
)

const (
	headerSize = 256
	sampleSize = 4

	offDiveNumber  = 0
	offActivity    = 2
	offOxygen      = 3
	offYear        = 6
	offDay         = 8
	offMonth       = 9
	offMinute      = 10
	offHour        = 11
	offDiveTime    = 12
	offMaxPressure = 22
	offInterval    = 26

	activityScuba    = 2
	activityGauge    = 3
	activityFreedive = 4

	// Surface reference in millibar.
	surfacePressure = 1013
)

// Their float64 product is the specific weight of seawater (millibar to
// centimeters).
var (
	seawaterDensity = 1.024
	standardGravity = 0.980665
)

var layout = frame.Layout{HeaderSize: headerSize, Stride: sampleSize}

func init() {
	driver.Register(family.DeepSix, New)
}

// Parser decodes Deep Six Excursion dive logs: a 256 byte header followed by
// 4 byte samples of temperature and absolute pressure.
type Parser struct {
	parser.Base

	sampleInterval uint
}

var _ parser.Parser = (*Parser)(nil)

// New creates a Deep Six parser. The model, serial and clock are unused.
func New(params driver.Params) (parser.Parser, error) {
	return &Parser{Base: parser.NewBase(family.DeepSix, params.Logger)}, nil
}

// SetData implements parser.Parser.
func (p *Parser) SetData(data []byte) error {
	p.Reset(data)
	p.sampleInterval = 0

	f, err := layout.Parse(data)
	if err != nil {
		return err
	}
	hdr := f.Header

	// Minutes for scuba and gauge, seconds for freedives.
	divetime := uint(frame.U16(hdr, offDiveTime))

	switch activity := hdr[offActivity]; activity {
	case activityScuba:
		divetime *= 60
		mix := field.Mix{Oxygen: float64(hdr[offOxygen]) / 100.0}
		if err := p.Cache.AssignIndexed(field.GasMix, 0, mix); err != nil {
			return err
		}
		if err := p.Cache.Assign(field.GasMixCount, uint(1)); err != nil {
			return err
		}
		if err := p.Cache.Assign(field.DiveMode, field.ModeOC); err != nil {
			return err
		}
	case activityGauge:
		divetime *= 60
		if err := p.Cache.Assign(field.DiveMode, field.ModeGauge); err != nil {
			return err
		}
	case activityFreedive:
		if err := p.Cache.Assign(field.DiveMode, field.ModeFreedive); err != nil {
			return err
		}
	default:
		p.Log.WithField("activity", activity).Warn("deepsix: unknown activity type")
	}

	// Single byte; the recorded interval wins over any per-mode default.
	p.sampleInterval = uint(hdr[offInterval])

	maxPressure := uint(frame.U16(hdr, offMaxPressure))

	if err := p.Cache.Assign(field.DiveTime, divetime); err != nil {
		return err
	}
	if err := p.Cache.Assign(field.MaxDepth, PressureToDepth(maxPressure)); err != nil {
		return err
	}
	number := strconv.FormatUint(uint64(frame.U16(hdr, offDiveNumber)), 10)
	return p.Cache.AddString("Dive number", number)
}

// Datetime implements parser.Parser. The format records no seconds and no
// timezone.
func (p *Parser) Datetime() (parser.Datetime, error) {
	f, err := layout.Parse(p.Data)
	if err != nil {
		return parser.Datetime{}, err
	}
	hdr := f.Header
	return parser.Datetime{
		Year:     int(frame.U16(hdr, offYear)),
		Day:      int(hdr[offDay]),
		Month:    int(hdr[offMonth]),
		Minute:   int(hdr[offMinute]),
		Hour:     int(hdr[offHour]),
		Second:   0,
		Timezone: parser.TimezoneNone,
	}, nil
}

// SamplesForeach implements parser.Parser. Each sample yields a time, a depth
// and a temperature event, in that order. A short trailing record is ignored.
func (p *Parser) SamplesForeach(fn parser.SampleFunc) error {
	f, err := layout.Parse(p.Data)
	if err != nil {
		return err
	}
	for i := 0; i < f.Count(); i++ {
		rec := f.Sample(i)
		temp := uint(frame.U16(rec, 0))
		pressure := uint(frame.U16(rec, 2))

		sample := parser.SampleValue{Time: uint(i+1) * p.sampleInterval}
		if fn != nil {
			fn(parser.SampleTime, sample)
		}
		sample.Depth = PressureToDepth(pressure)
		if fn != nil {
			fn(parser.SampleDepth, sample)
		}
		sample.Temperature = float64(temp) / 10.0
		if fn != nil {
			fn(parser.SampleTemperature, sample)
		}
	}
	return nil
}

// PressureToDepth converts an absolute pressure in millibar to meters of
// seawater. Readings below the surface reference clamp to zero.
func PressureToDepth(mbar uint) float64 {
	if mbar < surfacePressure {
		return 0.0
	}
	specificWeight := seawaterDensity * standardGravity
	mbar -= surfacePressure
	return float64(mbar) / specificWeight / 100.0
}
