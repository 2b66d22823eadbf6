package maze

const (
	corridorProbability = 0.75

	corridorMainPathBonus = 0.20
	roomMainPathBonus     = 0.10
)

// Probability of adding 0, 1, 2 or 3 extra passages beyond the way back.
var (
	corridorExtraWeights = []float64{0.10, 0.30, 0.40, 0.20}
	roomExtraWeights     = []float64{0.50, 0.30, 0.15, 0.05}
)

// Placement describes what a newly materialized cell must respect.
type Placement struct {
	Travel     Direction // Direction of travel into the cell; its opposite is always open.
	Forced     Passages  // Passages that must be open, e.g. toward the next main path cell.
	Closed     Passages  // Directions that must not receive an extra passage.
	OnMainPath bool
}

// Policy decides the kind and passages of new cells.
type Policy struct {
	rng Rand
}

// NewPolicy returns a Policy drawing from rng.
func NewPolicy(rng Rand) Policy {
	return Policy{rng: rng}
}

// ChooseKind picks Corridor 75% of the time and Room otherwise.
func (p Policy) ChooseKind() CellKind {
	if chance(p.rng, corridorProbability) {
		return Corridor
	}
	return Room
}

// Passages builds the passage set of a new cell of the given kind.
func (p Policy) Passages(kind CellKind, pl Placement) Passages {
	passages := PassagesOf(pl.Travel.Opposite()) | pl.Forced

	weights, bonus := corridorExtraWeights, corridorMainPathBonus
	if kind == Room {
		weights, bonus = roomExtraWeights, roomMainPathBonus
	}

	passages = p.addExtras(passages, pl.Closed, weighted(p.rng, weights))
	if pl.OnMainPath && chance(p.rng, bonus) {
		passages = p.addExtras(passages, pl.Closed, 1)
	}
	return passages
}

// Materialize picks a kind and builds the cell for pl.
func (p Policy) Materialize(pl Placement) Cell {
	kind := p.ChooseKind()
	return Cell{Kind: kind, Passages: p.Passages(kind, pl)}
}

// addExtras opens up to n directions not already open and not closed,
// sampled uniformly without replacement.
func (p Policy) addExtras(passages, closed Passages, n int) Passages {
	candidates := make([]Direction, 0, 4)
	for _, d := range Directions {
		if !passages.Has(d) && !closed.Has(d) {
			candidates = append(candidates, d)
		}
	}

	for ; n > 0 && len(candidates) > 0; n-- {
		i := p.rng.Intn(len(candidates))
		passages = passages.With(candidates[i])
		candidates = append(candidates[:i], candidates[i+1:]...)
	}
	return passages
}
