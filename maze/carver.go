package maze

import "github.com/zyedidia/generic/mapset"

const (
	carveGreedyProbability = 0.75
	carveMaxSteps          = 10000
)

// CarvePath returns a simple path of 4-adjacent positions from start to
// target on an open size x size grid. A biased random walk with backtracking
// is tried first; if it runs out of steps the shortest path is used instead.
func CarvePath(start, target Position, size int, rng Rand) []Position {
	if path := carveWalk(start, target, size, rng); path != nil {
		return path
	}
	return shortestPath(start, target, size)
}

func carveWalk(start, target Position, size int, rng Rand) []Position {
	path := []Position{start}
	visited := mapset.New[Position]()
	visited.Put(start)

	for range carveMaxSteps {
		current := path[len(path)-1]
		if current == target {
			return path
		}

		candidates := make([]Position, 0, 4)
		for _, d := range Directions {
			n := current.Step(d)
			if inBound(n, size) && !visited.Has(n) {
				candidates = append(candidates, n)
			}
		}

		if len(candidates) == 0 {
			path = path[:len(path)-1]
			if len(path) == 0 {
				return nil
			}
			continue
		}

		var next Position
		if chance(rng, carveGreedyProbability) {
			next = closest(candidates, target)
		} else {
			next = candidates[rng.Intn(len(candidates))]
		}
		visited.Put(next)
		path = append(path, next)
	}

	if path[len(path)-1] == target {
		return path
	}
	return nil
}

func closest(candidates []Position, target Position) Position {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Manhattan(target) < best.Manhattan(target) {
			best = c
		}
	}
	return best
}

// shortestPath runs a plain BFS over the open grid, ignoring passages.
func shortestPath(start, target Position, size int) []Position {
	if !inBound(start, size) || !inBound(target, size) {
		return nil
	}

	queue := []Position{start}
	cameFrom := map[Position]Position{start: start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == target {
			var path []Position
			for current != start {
				path = append(path, current)
				current = cameFrom[current]
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range Directions {
			n := current.Step(d)
			if _, seen := cameFrom[n]; inBound(n, size) && !seen {
				cameFrom[n] = current
				queue = append(queue, n)
			}
		}
	}
	return nil
}
