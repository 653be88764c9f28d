package models

import (
	"fmt"
	"strings"
)

// UnitSystem selects the measurement units of a forecast.
type UnitSystem string

const (
	UnitsMetric     UnitSystem = "metric"
	UnitsImperial   UnitSystem = "imperial"
	UnitsScientific UnitSystem = "scientific"
)

// UnitGroup returns the upstream unitGroup query value.
func (u UnitSystem) UnitGroup() string {
	switch u {
	case UnitsImperial:
		return "us"
	case UnitsScientific:
		return "base"
	default:
		return "metric"
	}
}

// TemperatureUnit returns the symbol used when displaying temperatures.
func (u UnitSystem) TemperatureUnit() string {
	switch u {
	case UnitsImperial:
		return "°F"
	case UnitsScientific:
		return "K"
	default:
		return "°C"
	}
}

// ParseUnitSystem accepts our names and the upstream unitGroup aliases (us, base).
// An empty string returns def.
func ParseUnitSystem(s string, def UnitSystem) (UnitSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "metric":
		return UnitsMetric, nil
	case "imperial", "us":
		return UnitsImperial, nil
	case "scientific", "base":
		return UnitsScientific, nil
	}
	return "", fmt.Errorf("unknown unit system %q", s)
}
