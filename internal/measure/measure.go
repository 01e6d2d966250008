package measure

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidValue is returned for NaN or infinite measurement values.
	ErrInvalidValue = errors.New("measure: value is not a finite number")
	// ErrOutOfRange is returned by Validate for values outside [min,max].
	ErrOutOfRange = errors.New("measure: value out of range")
	// ErrUnknownKey is returned when a measurement name cannot be parsed.
	ErrUnknownKey = errors.New("measure: unknown measurement key")
)

// Key identifies one body measurement.
type Key int

const (
	Neck Key = iota
	Shoulder
	Chest
	Waist
	Stomach
	Hips
	Thigh
	Inseam
	Height
	Weight

	// NumKeys is the number of measurement keys. Every Vector holds exactly this many entries.
	NumKeys = int(Weight) + 1
)

var keyNames = [NumKeys]string{
	"neck", "shoulder", "chest", "waist", "stomach",
	"hips", "thigh", "inseam", "height", "weight",
}

func (k Key) String() string {
	if k < 0 || int(k) >= NumKeys {
		return fmt.Sprintf("key(%d)", int(k))
	}
	return keyNames[k]
}

// Valid reports whether k is one of the ten known keys.
func (k Key) Valid() bool {
	return k >= 0 && int(k) < NumKeys
}

// ParseKey maps a measurement name (case-insensitive) to its Key.
func ParseKey(s string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range keyNames {
		if n == name {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// Keys returns all keys in canonical order.
func Keys() []Key {
	keys := make([]Key, NumKeys)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Unit is the display unit of a measurement.
type Unit string

const (
	Centimeters Unit = "cm"
	Kilograms   Unit = "kg"
)

// Category groups measurements for display. It has no effect on geometry.
type Category string

const (
	Upper   Category = "upper"
	Lower   Category = "lower"
	General Category = "general"
)

// Measurement is one entry of the measurement vector.
type Measurement struct {
	Key      Key
	Value    float64
	Min      float64
	Max      float64
	Unit     Unit
	Category Category
}

// Clamp returns v limited to the measurement bounds.
func (m Measurement) Clamp(v float64) float64 {
	return math.Max(m.Min, math.Min(m.Max, v))
}

type bounds struct {
	min, max, def float64
	unit          Unit
	cat           Category
}

// Defaults equal the scale reference values so Default() derives unit factors.
var table = [NumKeys]bounds{
	Neck:     {28, 50, 38, Centimeters, Upper},
	Shoulder: {35, 60, 45, Centimeters, Upper},
	Chest:    {70, 130, 95, Centimeters, Upper},
	Waist:    {55, 130, 85, Centimeters, Upper},
	Stomach:  {60, 135, 88, Centimeters, Upper},
	Hips:     {70, 135, 95, Centimeters, Lower},
	Thigh:    {40, 80, 55, Centimeters, Lower},
	Inseam:   {60, 100, 80, Centimeters, Lower},
	Height:   {140, 210, 175, Centimeters, General},
	Weight:   {40, 150, 70, Kilograms, General},
}

// Vector is the full measurement vector, indexed by Key.
type Vector [NumKeys]Measurement

// Default returns a vector with every measurement at its default value.
func Default() Vector {
	var v Vector
	for i, b := range table {
		v[i] = Measurement{
			Key:      Key(i),
			Value:    b.def,
			Min:      b.min,
			Max:      b.max,
			Unit:     b.unit,
			Category: b.cat,
		}
	}
	return v
}

// Value returns the current value for k.
func (v Vector) Value(k Key) float64 {
	return v[k].Value
}

// Set stores value for k, clamped into the key's bounds.
func (v *Vector) Set(k Key, value float64) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKey, int(k))
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s=%v", ErrInvalidValue, k, value)
	}
	v[k].Value = v[k].Clamp(value)
	return nil
}

// Validate reports the first measurement that is non-finite or out of bounds.
func (v Vector) Validate() error {
	for _, m := range v {
		if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidValue, m.Key, m.Value)
		}
		if m.Value < m.Min || m.Value > m.Max {
			return fmt.Errorf("%w: %s=%g not in [%g,%g]", ErrOutOfRange, m.Key, m.Value, m.Min, m.Max)
		}
	}
	return nil
}

// Complete reports the first slot that does not hold its own populated
// measurement: a key stored in the wrong slot, or missing bounds. The zero
// Vector is never complete.
func (v Vector) Complete() error {
	for i, m := range v {
		k := Key(i)
		if m.Key != k {
			return fmt.Errorf("%w: slot %s holds %s", ErrUnknownKey, k, m.Key)
		}
		if !(m.Min < m.Max) {
			return fmt.Errorf("%w: %s has no bounds", ErrInvalidValue, k)
		}
	}
	return nil
}

// ByCategory returns the measurements in category c, in key order.
func (v Vector) ByCategory(c Category) []Measurement {
	var out []Measurement
	for _, m := range v {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// Values returns the raw values keyed by measurement name.
func (v Vector) Values() map[string]float64 {
	out := make(map[string]float64, NumKeys)
	for _, m := range v {
		out[m.Key.String()] = m.Value
	}
	return out
}
