package yard

import (
	"fmt"
	"strings"
)

// SizeClass is the nominal container length in feet
type SizeClass int

const (
	Size20 SizeClass = 20
	Size40 SizeClass = 40
	Size45 SizeClass = 45
)

// SizeClassFromISOType derives the size class from the first character of an
// ISO 6346 size/type code (e.g. "22G1" -> 20ft, "45R1" -> 40ft, "L5G1" -> 45ft).
func SizeClassFromISOType(isoType string) (SizeClass, error) {
	code := strings.TrimSpace(isoType)
	if code == "" {
		return 0, NewUnknownSizeClassError(isoType)
	}

	switch strings.ToUpper(code[:1]) {
	case "2":
		return Size20, nil
	case "4":
		return Size40, nil
	case "L", "9":
		return Size45, nil
	default:
		return 0, NewUnknownSizeClassError(isoType)
	}
}

// ParseSizeClass accepts "20", "40", "45" with an optional "ft" suffix
func ParseSizeClass(s string) (SizeClass, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "ft") {
	case "20":
		return Size20, nil
	case "40":
		return Size40, nil
	case "45":
		return Size45, nil
	}
	return 0, NewUnknownSizeClassError(s)
}

// IsLong reports whether the container occupies a full bay (40ft or 45ft)
func (s SizeClass) IsLong() bool {
	return s == Size40 || s == Size45
}

func (s SizeClass) IsValid() bool {
	return s == Size20 || s == Size40 || s == Size45
}

func (s SizeClass) String() string {
	return fmt.Sprintf("%dft", int(s))
}

// CargoStatus is the declared load state of a container
type CargoStatus string

const (
	CargoLaden CargoStatus = "LADEN"
	CargoEmpty CargoStatus = "EMPTY"
)

func ParseCargoStatus(s string) (CargoStatus, error) {
	switch CargoStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case CargoLaden:
		return CargoLaden, nil
	case CargoEmpty:
		return CargoEmpty, nil
	}
	return "", NewInvalidCargoStatusError(s)
}
