package maze

import "github.com/zyedidia/generic/mapset"

// Connected reports whether end can be reached from start by walking only
// edges both endpoints agree on (see Grid.Linked).
func Connected(g *Grid, start, end Position) bool {
	if !g.InBound(start) || !g.InBound(end) {
		return false
	}

	visited := mapset.New[Position]()
	visited.Put(start)
	queue := []Position{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == end {
			return true
		}

		for _, d := range Directions {
			next := current.Step(d)
			if visited.Has(next) || !g.Linked(current, d) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return false
}
