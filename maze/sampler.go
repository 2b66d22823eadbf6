package maze

import "math"

const (
	defaultExitMargin  = 5
	exitMinRadiusRatio = 0.75
	exitSampleAttempts = 100
	exitRingAngles     = 8
)

// ExitSampler picks the exit position for a board of the given size.
// Implementations must return an in-bounds position different from center.
type ExitSampler interface {
	SampleExit(center Position, size int, rng Rand) Position
}

// RingSampler places the exit on a ring between 75% and 100% of the distance
// from the center to the interior margin.
type RingSampler struct {
	Margin int // Cells kept free between the exit and the board edge.
}

// SampleExit implements ExitSampler.
func (s RingSampler) SampleExit(center Position, size int, rng Rand) Position {
	margin := s.Margin
	if margin < 0 || center.Row-margin < 1 {
		// board too small for the margin
		margin = 0
	}
	maxRadius := float64(center.Row - margin)
	minRadius := maxRadius * exitMinRadiusRatio

	inside := func(p Position) bool {
		return p != center &&
			p.Row >= margin && p.Row < size-margin &&
			p.Col >= margin && p.Col < size-margin
	}

	for range exitSampleAttempts {
		angle := rng.Float64() * 2 * math.Pi
		radius := minRadius + rng.Float64()*(maxRadius-minRadius)
		if p := polar(center, angle, radius); inside(p) {
			return p
		}
	}

	for radius := maxRadius; radius >= 1; radius-- {
		for k := range exitRingAngles {
			angle := float64(k) * 2 * math.Pi / exitRingAngles
			if p := polar(center, angle, radius); inside(p) {
				return p
			}
		}
	}

	return Position{Row: margin, Col: margin}
}

// FixedExit always returns the same position.
type FixedExit Position

// SampleExit implements ExitSampler.
func (f FixedExit) SampleExit(Position, int, Rand) Position {
	return Position(f)
}

func polar(center Position, angle, radius float64) Position {
	return Position{
		Row: center.Row + int(math.Round(radius*math.Sin(angle))),
		Col: center.Col + int(math.Round(radius*math.Cos(angle))),
	}
}
