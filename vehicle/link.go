package vehicle

import "github.com/Carmen-Shannon/chassis-go/common"

// LinkKind discriminates the renderable suspension link variants. The set is
// closed: the scene switches on the kind to pick line color and shape instead
// of inspecting runtime types.
type LinkKind int

const (
	// LinkSpring is a coil spring drawn as a helix between its endpoints.
	LinkSpring LinkKind = iota

	// LinkDistance is a rigid distance constraint drawn as a segment.
	LinkDistance

	// LinkRevoluteSpherical is a revolute-spherical joint drawn as a segment
	// in a distinct color.
	LinkRevoluteSpherical
)

// Link is one renderable suspension element with world-space endpoints,
// refreshed by its owner each simulation step.
type Link struct {
	Kind LinkKind
	P1   common.Vec3
	P2   common.Vec3
}

// LinkProvider supplies the current set of renderable links. The slice is
// re-read every frame; providers may return an internal slice but must not
// mutate entries while a frame is being prepared.
type LinkProvider interface {
	// Links returns the current renderable links with up-to-date endpoints.
	//
	// Returns:
	//   - []Link: the links to draw this frame
	Links() []Link
}
