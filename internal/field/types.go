package field

import "fmt"

// Type enumerates the normalized dive facts a decoder may produce.
type Type uint

const (
	DiveTime Type = iota
	MaxDepth
	AvgDepth
	GasMixCount
	GasMix
	Salinity
	Atmospheric
	TankCount
	Tank
	DiveMode
	String

	numTypes
)

var typeNames = [numTypes]string{
	DiveTime:    "divetime",
	MaxDepth:    "maxdepth",
	AvgDepth:    "avgdepth",
	GasMixCount: "gasmix_count",
	GasMix:      "gasmix",
	Salinity:    "salinity",
	Atmospheric: "atmospheric",
	TankCount:   "tank_count",
	Tank:        "tank",
	DiveMode:    "divemode",
	String:      "string",
}

func (t Type) String() string {
	if t < numTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("field(%d)", uint(t))
}

// Indexed reports whether the tag addresses an array slot.
func (t Type) Indexed() bool {
	return t == GasMix || t == Tank || t == String
}

// Types returns every known tag in declaration order.
func Types() []Type {
	out := make([]Type, 0, numTypes)
	for t := Type(0); t < numTypes; t++ {
		out = append(out, t)
	}
	return out
}

// Mode classifies the activity recorded by the dive computer.
type Mode uint

const (
	ModeFreedive Mode = iota
	ModeGauge
	ModeOC
	ModeCCR
	ModeSCR
)

func (m Mode) String() string {
	switch m {
	case ModeFreedive:
		return "freedive"
	case ModeGauge:
		return "gauge"
	case ModeOC:
		return "opencircuit"
	case ModeCCR:
		return "ccr"
	case ModeSCR:
		return "scr"
	default:
		return fmt.Sprintf("mode(%d)", uint(m))
	}
}

// Mix is a breathing gas. Nitrogen is whatever oxygen and helium leave.
type Mix struct {
	Oxygen float64 `json:"oxygen" yaml:"oxygen"`
	Helium float64 `json:"helium" yaml:"helium"`
}

// Nitrogen returns the implied nitrogen fraction.
func (m Mix) Nitrogen() float64 {
	return 1.0 - m.Oxygen - m.Helium
}

// Water distinguishes fresh from salt water density readings.
type Water uint

const (
	WaterFresh Water = iota
	WaterSalt
)

func (w Water) String() string {
	if w == WaterSalt {
		return "salt"
	}
	return "fresh"
}

// Density is the water density configured on the device.
type Density struct {
	Type    Water   `json:"type" yaml:"type"`
	Density float64 `json:"density" yaml:"density"`
}

// Volume tells how a tank volume was specified.
type Volume uint

const (
	VolumeNone Volume = iota
	VolumeMetric
	VolumeImperial
)

// Cylinder describes one tank. GasMix indexes the gas mix array, or is
// negative when the tank is not tied to a mix.
type Cylinder struct {
	GasMix        int     `json:"gasmix" yaml:"gasmix"`
	Type          Volume  `json:"type" yaml:"type"`
	Volume        float64 `json:"volume" yaml:"volume"`
	WorkPressure  float64 `json:"workpressure" yaml:"workpressure"`
	BeginPressure float64 `json:"beginpressure" yaml:"beginpressure"`
	EndPressure   float64 `json:"endpressure" yaml:"endpressure"`
}

// Text is a decoder-specific named string such as a firmware version.
type Text struct {
	Desc  string `json:"desc" yaml:"desc"`
	Value string `json:"value" yaml:"value"`
}
