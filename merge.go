package gridplanner

// PruneContained removes obstacles fully contained within another obstacle.
// A robot that clears the enclosing disc also clears every disc inside it,
// so the result answers collision queries exactly like the input.
// Of two identical discs the first is kept.
func PruneContained(obstacles []Obstacle) []Obstacle {
	if len(obstacles) <= 1 {
		return obstacles
	}

	contained := make([]bool, len(obstacles))

	for i := 0; i < len(obstacles); i++ {
		if contained[i] {
			continue
		}

		for j := 0; j < len(obstacles); j++ {
			if i == j || contained[j] {
				continue
			}

			if isDiscContainedIn(obstacles[i], obstacles[j]) && !(sameDisc(obstacles[i], obstacles[j]) && i < j) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]Obstacle, 0, len(obstacles))
	for i := range obstacles {
		if !contained[i] {
			result = append(result, obstacles[i])
		}
	}

	return result
}

// isDiscContainedIn checks if disc a lies entirely within disc b
func isDiscContainedIn(a, b Obstacle) bool {
	// Quick bounding box check first
	if !discBound(b.Origin.Point(), b.Radius).Contains(a.Origin.Point()) {
		return false
	}
	return a.Origin.Distance(b.Origin)+a.Radius <= b.Radius
}

func sameDisc(a, b Obstacle) bool {
	return a.Origin == b.Origin && a.Radius == b.Radius
}
