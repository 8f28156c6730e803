// Package units converts provider temperatures (always Celsius) into display values.
package units

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// Unit is a temperature display unit
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// Label returns the short unit label shown next to temperatures
func (u Unit) Label() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

// String returns the string representation of the unit
func (u Unit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

// Toggle returns the other unit
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// ParseUnit accepts c, f, celsius or fahrenheit in any case
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	default:
		return Celsius, fmt.Errorf("unknown temperature unit %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.Label()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ToDisplay converts a Celsius reading to the integer shown in the given unit.
// Halves round away from zero. Results outside the int range saturate at its
// bounds and NaN displays as 0.
func ToDisplay(tempC float64, unit Unit) int {
	value := tempC
	if unit == Fahrenheit {
		value = tempC*9/5 + 32
	}
	return saturatingInt(math.Round(value))
}

func saturatingInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= float64(math.MaxInt):
		return math.MaxInt
	case v <= float64(math.MinInt):
		return math.MinInt
	default:
		return int(v)
	}
}

// Preference is the process-wide unit toggle
type Preference struct {
	mu   sync.RWMutex
	unit Unit
}

// NewPreference creates a preference starting at the given unit
func NewPreference(initial Unit) *Preference {
	return &Preference{unit: initial}
}

// Current returns the selected unit
func (p *Preference) Current() Unit {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.unit
}

// Toggle flips the selected unit and returns the new value
func (p *Preference) Toggle() Unit {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unit = p.unit.Toggle()
	return p.unit
}

// Set replaces the selected unit
func (p *Preference) Set(unit Unit) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unit = unit
}
