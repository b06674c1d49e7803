package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithGrid configures the ground grid: line spacing, half-extent in lines per
// side, and the Z height of the grid plane.
//
// Parameters:
//   - spacing: distance between grid lines in world units (minimum 0.01)
//   - halfExtent: number of grid lines on each side of the origin (minimum 1)
//   - height: Z coordinate of the grid plane
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGrid(spacing float32, halfExtent int, height float32) SceneBuilderOption {
	return func(s *scene) {
		if spacing < 0.01 {
			spacing = 0.01
		}
		if halfExtent < 1 {
			halfExtent = 1
		}
		s.gridSpacing = spacing
		s.gridHalfExtent = halfExtent
		s.gridHeight = height
		s.gridLines = nil
	}
}

// WithSpringStyle configures how spring links are coiled: the helix radius,
// the number of turns, and the number of line segments per spring.
//
// Parameters:
//   - radius: coil radius in world units
//   - turns: number of helix turns (minimum 1)
//   - segments: line segments per spring (minimum 4)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSpringStyle(radius float32, turns, segments int) SceneBuilderOption {
	return func(s *scene) {
		if turns < 1 {
			turns = 1
		}
		if segments < 4 {
			segments = 4
		}
		s.springRadius = radius
		s.springTurns = turns
		s.springSegments = segments
	}
}

// WithPrepWorkers sets the number of worker goroutines used during the
// parallel geometry prep phase of Prepare. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of prep workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPrepWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.prepWorkers = n
	}
}
