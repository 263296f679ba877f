package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ViolationReason string

const (
	ReasonNonNumeric ViolationReason = "non_numeric"
	ReasonNotInteger ViolationReason = "not_integer"
	ReasonTooSmall   ViolationReason = "too_small"
	ReasonTooLarge   ViolationReason = "too_large"
)

// DimensionError describes one bad board dimension.
type DimensionError struct {
	Dimension string          `json:"dimension"`
	Value     string          `json:"value"`
	Reason    ViolationReason `json:"reason"`
}

func (d DimensionError) Error() string {
	switch d.Reason {
	case ReasonNonNumeric:
		return fmt.Sprintf("board %s '%s' is not numeric", d.Dimension, d.Value)
	case ReasonNotInteger:
		return fmt.Sprintf("board %s '%s' is not a whole number", d.Dimension, d.Value)
	case ReasonTooLarge:
		return fmt.Sprintf("board %s of %s invalid, must be %d or less", d.Dimension, d.Value, MaxParsedDimension)
	default:
		return fmt.Sprintf("board %s of %s invalid, must be %d or greater", d.Dimension, d.Value, MinDimension)
	}
}

// ValidationError holds every dimension violation found while building a game.
type ValidationError struct {
	Violations []DimensionError `json:"violations"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) add(dimension, value string, reason ViolationReason) {
	e.Violations = append(e.Violations, DimensionError{Dimension: dimension, Value: value, Reason: reason})
}

func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// ValidateDimensions checks both dimensions and reports all violations.
func ValidateDimensions(height, width int) error {
	verr := &ValidationError{}
	if height < MinDimension {
		verr.add("height", strconv.Itoa(height), ReasonTooSmall)
	}
	if width < MinDimension {
		verr.add("width", strconv.Itoa(width), ReasonTooSmall)
	}
	return verr.orNil()
}

// ParseDimensions converts raw adapter input into board dimensions.
// Whole-number floats such as "6.0" are accepted. Input is also capped at
// MaxParsedDimension; NewGame itself has no upper bound.
func ParseDimensions(height, width string) (int, int, error) {
	verr := &ValidationError{}
	h := parseDimension(verr, "height", height)
	w := parseDimension(verr, "width", width)
	if err := verr.orNil(); err != nil {
		return 0, 0, err
	}
	return h, w, nil
}

func parseDimension(verr *ValidationError, name, raw string) int {
	raw = strings.TrimSpace(raw)

	// ParseFloat covers plain integers too, so "3000000000" and
	// "3000000000.0" take the same path
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		verr.add(name, raw, ReasonNonNumeric)
		return 0
	}
	if f != math.Trunc(f) {
		verr.add(name, raw, ReasonNotInteger)
		return 0
	}

	switch {
	case f < MinDimension:
		verr.add(name, raw, ReasonTooSmall)
		return 0
	case f > MaxParsedDimension:
		verr.add(name, raw, ReasonTooLarge)
		return 0
	}
	return int(f)
}
