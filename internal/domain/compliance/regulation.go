package compliance

import "fmt"

const (
	DefaultTargetIntensity = 89.3368
	DefaultMJPerTon        = 41000
	DefaultMinYear         = 2020
)

// Regulation holds the regulatory constants for CB computation.
// It is an immutable value injected into the calculator.
type Regulation struct {
	targetIntensity float64
	mjPerTon        float64
	minYear         int
}

func NewRegulation(targetIntensity, mjPerTon float64, minYear int) (Regulation, error) {
	if targetIntensity <= 0 {
		return Regulation{}, fmt.Errorf("target intensity must be positive, got %v", targetIntensity)
	}
	if mjPerTon <= 0 {
		return Regulation{}, fmt.Errorf("MJ per ton must be positive, got %v", mjPerTon)
	}
	if minYear <= 0 {
		return Regulation{}, fmt.Errorf("minimum year must be positive, got %d", minYear)
	}
	return Regulation{targetIntensity: targetIntensity, mjPerTon: mjPerTon, minYear: minYear}, nil
}

// DefaultRegulation returns the 2025 reference target
func DefaultRegulation() Regulation {
	return Regulation{
		targetIntensity: DefaultTargetIntensity,
		mjPerTon:        DefaultMJPerTon,
		minYear:         DefaultMinYear,
	}
}

func (r Regulation) TargetIntensity() float64 {
	return r.targetIntensity
}

func (r Regulation) MJPerTon() float64 {
	return r.mjPerTon
}

func (r Regulation) MinYear() int {
	return r.minYear
}
