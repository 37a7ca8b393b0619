package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidPercentage is returned for percentages outside [1, 100].
var ErrInvalidPercentage = errors.New("invalid percentage")

const (
	MinPercentage = 1
	MaxPercentage = 100
)

// Percentage is a whole-number share of a price, from 1 to 100.
type Percentage struct {
	value int
}

// NewPercentage validates v against [MinPercentage, MaxPercentage].
func NewPercentage(v int) (Percentage, error) {
	if v < MinPercentage || v > MaxPercentage {
		return Percentage{}, fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidPercentage, v, MinPercentage, MaxPercentage)
	}
	return Percentage{value: v}, nil
}

// MustPercentage panics on invalid input. Use for constants and tests.
func MustPercentage(v int) Percentage {
	p, err := NewPercentage(v)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percentage) Int() int       { return p.value }
func (p Percentage) String() string { return fmt.Sprintf("%d%%", p.value) }

// Exceeds reports whether p is strictly greater than limit.
func (p Percentage) Exceeds(limit Percentage) bool { return p.value > limit.value }
