package parser

import "fmt"

// SampleType is the measurement kind of one sample event.
type SampleType uint

const (
	SampleTime SampleType = iota
	SampleDepth
	SamplePressure
	SampleTemperature
	SampleEvent
	SampleRBT
	SampleHeartbeat
	SampleBearing
	SampleVendor
	SampleSetpoint
	SamplePPO2
	SampleCNS
	SampleDeco
	SampleGasMix
)

var sampleNames = []string{
	"time", "depth", "pressure", "temperature", "event", "rbt", "heartbeat",
	"bearing", "vendor", "setpoint", "ppo2", "cns", "deco", "gasmix",
}

func (s SampleType) String() string {
	if int(s) < len(sampleNames) {
		return sampleNames[s]
	}
	return fmt.Sprintf("sample(%d)", uint(s))
}

// TankPressure is a pressure reading in bar for one tank.
type TankPressure struct {
	Tank  uint
	Value float64
}

// SampleValue carries the payload of a sample event. Time is the offset in
// seconds of the sample slot and is set on every event; the other members
// are meaningful for their own SampleType only.
type SampleValue struct {
	Time        uint
	Depth       float64
	Temperature float64
	Pressure    TankPressure
	GasMix      uint
	PPO2        float64
	Setpoint    float64
	CNS         float64
	Heartbeat   uint
	Bearing     uint
	RBT         uint
}

// SampleFunc receives sample events synchronously, in time order.
type SampleFunc func(kind SampleType, value SampleValue)

// Sample is one materialized event.
type Sample struct {
	Type  SampleType
	Value SampleValue
}

// Collect drives SamplesForeach and returns the events as a slice.
func Collect(p Parser) ([]Sample, error) {
	var out []Sample
	err := p.SamplesForeach(func(kind SampleType, value SampleValue) {
		out = append(out, Sample{Type: kind, Value: value})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Statistics accumulates a dive time and maximum depth from a sample walk.
type Statistics struct {
	DiveTime uint
	MaxDepth float64
}

// Callback returns a SampleFunc updating s.
func (s *Statistics) Callback() SampleFunc {
	return func(kind SampleType, value SampleValue) {
		switch kind {
		case SampleTime:
			s.DiveTime = value.Time
		case SampleDepth:
			if s.MaxDepth < value.Depth {
				s.MaxDepth = value.Depth
			}
		}
	}
}
