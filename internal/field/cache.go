package field

import (
	"fmt"

	"github.com/d21d3q/godivecomputer/internal/status"
)

const (
	MaxGasMixes = 16
	MaxTanks    = 16
	MaxStrings  = 32
)

// Value is an optional slot: either present with a value or absent.
type Value[T any] struct {
	v  T
	ok bool
}

// Some returns a present slot holding v.
func Some[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// Get returns the stored value and whether the slot is present.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

// Present reports whether the slot holds a value.
func (o Value[T]) Present() bool { return o.ok }

func (o Value[T]) lookup(tag Type) (any, error) {
	if !o.ok {
		return nil, fmt.Errorf("%s: %w", tag, status.ErrUnsupported)
	}
	return o.v, nil
}

// Cache stores the facts a decoder computed for the current buffer.
// Absent slots answer ErrUnsupported; indexed slots are additionally bounded
// by their companion count.
type Cache struct {
	diveTime    Value[uint]
	maxDepth    Value[float64]
	avgDepth    Value[float64]
	gasMixCount Value[uint]
	gasMixes    [MaxGasMixes]Value[Mix]
	salinity    Value[Density]
	atmospheric Value[float64]
	tankCount   Value[uint]
	tanks       [MaxTanks]Value[Cylinder]
	diveMode    Value[Mode]
	strings     []Text
}

// Reset discards every stored fact.
func (c *Cache) Reset() {
	*c = Cache{}
}

// Assign stores a scalar fact and marks its tag initialized. The dynamic
// type of v must match the tag's payload.
func (c *Cache) Assign(tag Type, v any) error {
	var ok bool
	switch tag {
	case DiveTime:
		var n uint
		if n, ok = v.(uint); ok {
			c.diveTime = Some(n)
		}
	case MaxDepth:
		var f float64
		if f, ok = v.(float64); ok {
			c.maxDepth = Some(f)
		}
	case AvgDepth:
		var f float64
		if f, ok = v.(float64); ok {
			c.avgDepth = Some(f)
		}
	case GasMixCount:
		var n uint
		if n, ok = v.(uint); ok {
			c.gasMixCount = Some(n)
		}
	case Salinity:
		var d Density
		if d, ok = v.(Density); ok {
			c.salinity = Some(d)
		}
	case Atmospheric:
		var f float64
		if f, ok = v.(float64); ok {
			c.atmospheric = Some(f)
		}
	case TankCount:
		var n uint
		if n, ok = v.(uint); ok {
			c.tankCount = Some(n)
		}
	case DiveMode:
		var m Mode
		if m, ok = v.(Mode); ok {
			c.diveMode = Some(m)
		}
	default:
		return fmt.Errorf("assign %s: not a scalar field: %w", tag, status.ErrInvalidArgs)
	}
	if !ok {
		return fmt.Errorf("assign %s: unexpected value type %T: %w", tag, v, status.ErrInvalidArgs)
	}
	return nil
}

// AssignIndexed stores one element of an array-shaped fact.
func (c *Cache) AssignIndexed(tag Type, index uint, v any) error {
	switch tag {
	case GasMix:
		mix, ok := v.(Mix)
		if !ok {
			return fmt.Errorf("assign %s: unexpected value type %T: %w", tag, v, status.ErrInvalidArgs)
		}
		if index >= MaxGasMixes {
			return fmt.Errorf("assign %s[%d]: index out of range: %w", tag, index, status.ErrInvalidArgs)
		}
		c.gasMixes[index] = Some(mix)
	case Tank:
		tank, ok := v.(Cylinder)
		if !ok {
			return fmt.Errorf("assign %s: unexpected value type %T: %w", tag, v, status.ErrInvalidArgs)
		}
		if index >= MaxTanks {
			return fmt.Errorf("assign %s[%d]: index out of range: %w", tag, index, status.ErrInvalidArgs)
		}
		c.tanks[index] = Some(tank)
	default:
		return fmt.Errorf("assign %s: not an indexed field: %w", tag, status.ErrInvalidArgs)
	}
	return nil
}

// AddString appends a named string field. Adding a name twice replaces the
// earlier value.
func (c *Cache) AddString(desc, value string) error {
	for i := range c.strings {
		if c.strings[i].Desc == desc {
			c.strings[i].Value = value
			return nil
		}
	}
	if len(c.strings) >= MaxStrings {
		return fmt.Errorf("add string %q: cache full: %w", desc, status.ErrInvalidArgs)
	}
	c.strings = append(c.strings, Text{Desc: desc, Value: value})
	return nil
}

// Get returns a scalar fact.
func (c *Cache) Get(tag Type) (any, error) {
	switch tag {
	case DiveTime:
		return c.diveTime.lookup(tag)
	case MaxDepth:
		return c.maxDepth.lookup(tag)
	case AvgDepth:
		return c.avgDepth.lookup(tag)
	case GasMixCount:
		return c.gasMixCount.lookup(tag)
	case Salinity:
		return c.salinity.lookup(tag)
	case Atmospheric:
		return c.atmospheric.lookup(tag)
	case TankCount:
		return c.tankCount.lookup(tag)
	case DiveMode:
		return c.diveMode.lookup(tag)
	default:
		return nil, fmt.Errorf("%s: %w", tag, status.ErrUnsupported)
	}
}

// GetIndexed returns one element of an array-shaped fact. The index must be
// below the count cached for the tag.
func (c *Cache) GetIndexed(tag Type, index uint) (any, error) {
	switch tag {
	case GasMix:
		if !c.inRange(c.gasMixCount, index, MaxGasMixes) {
			return nil, fmt.Errorf("%s[%d]: %w", tag, index, status.ErrUnsupported)
		}
		return c.gasMixes[index].lookup(tag)
	case Tank:
		if !c.inRange(c.tankCount, index, MaxTanks) {
			return nil, fmt.Errorf("%s[%d]: %w", tag, index, status.ErrUnsupported)
		}
		return c.tanks[index].lookup(tag)
	case String:
		if index >= uint(len(c.strings)) {
			return nil, fmt.Errorf("%s[%d]: %w", tag, index, status.ErrUnsupported)
		}
		return c.strings[index], nil
	default:
		return nil, fmt.Errorf("%s: not an indexed field: %w", tag, status.ErrUnsupported)
	}
}

func (c *Cache) inRange(count Value[uint], index, capacity uint) bool {
	n, ok := count.Get()
	return ok && index < n && index < capacity
}

// Lookup dispatches to Get or GetIndexed depending on the tag.
func (c *Cache) Lookup(tag Type, index uint) (any, error) {
	if tag.Indexed() {
		return c.GetIndexed(tag, index)
	}
	return c.Get(tag)
}

// GetString returns the string field registered under desc.
func (c *Cache) GetString(desc string) (string, error) {
	for _, s := range c.strings {
		if s.Desc == desc {
			return s.Value, nil
		}
	}
	return "", fmt.Errorf("string %q: %w", desc, status.ErrUnsupported)
}

// Strings returns a copy of the stored string fields in insertion order.
func (c *Cache) Strings() []Text {
	return append([]Text(nil), c.strings...)
}

// Initialized returns the bitmask of tags holding at least one value.
func (c *Cache) Initialized() uint32 {
	var mask uint32
	set := func(tag Type, present bool) {
		if present {
			mask |= 1 << tag
		}
	}
	set(DiveTime, c.diveTime.Present())
	set(MaxDepth, c.maxDepth.Present())
	set(AvgDepth, c.avgDepth.Present())
	set(GasMixCount, c.gasMixCount.Present())
	for _, m := range c.gasMixes {
		set(GasMix, m.Present())
	}
	set(Salinity, c.salinity.Present())
	set(Atmospheric, c.atmospheric.Present())
	set(TankCount, c.tankCount.Present())
	for _, t := range c.tanks {
		set(Tank, t.Present())
	}
	set(DiveMode, c.diveMode.Present())
	set(String, len(c.strings) > 0)
	return mask
}

// IsSet reports whether tag holds at least one value.
func (c *Cache) IsSet(tag Type) bool {
	return tag < numTypes && c.Initialized()&(1<<tag) != 0
}
