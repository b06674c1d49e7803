package scene

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/chassis-go/common"
	"github.com/Carmen-Shannon/chassis-go/engine/camera"
	"github.com/Carmen-Shannon/chassis-go/vehicle"
)

type stubLinks struct {
	links []vehicle.Link
}

func (s *stubLinks) Links() []vehicle.Link { return s.links }

func newTestScene(options ...SceneBuilderOption) Scene {
	return NewScene("test", camera.NewCamera(), options...)
}

func TestNewSceneNilCameraPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil camera")
		}
	}()
	NewScene("bad", nil)
}

func TestGridGeometry(t *testing.T) {
	s := newTestScene(WithGrid(2.0, 3, 0.5))
	s.Prepare()

	lines := s.Lines()
	// 2*3+1 lines per direction, two directions, two vertices per segment.
	if len(lines) != 4*(2*3+1) {
		t.Fatalf("grid vertex count = %d, want %d", len(lines), 4*(2*3+1))
	}
	for _, v := range lines {
		if v.Pos[2] != 0.5 {
			t.Fatalf("grid vertex at z=%v, want grid height 0.5", v.Pos[2])
		}
		if math.Abs(float64(v.Pos[0])) > 6 || math.Abs(float64(v.Pos[1])) > 6 {
			t.Fatalf("grid vertex %v outside extent", v.Pos)
		}
	}
}

func TestVehicleMarkerAndLinks(t *testing.T) {
	s := newTestScene(WithGrid(1.0, 1, 0))
	c := vehicle.NewChassis(vehicle.WithChassisPosition(common.Vec3{2, 0, 0}))
	links := &stubLinks{links: []vehicle.Link{
		{Kind: vehicle.LinkDistance, P1: common.Vec3{0, 0, 0}, P2: common.Vec3{0, 1, 0}},
		{Kind: vehicle.LinkRevoluteSpherical, P1: common.Vec3{1, 0, 0}, P2: common.Vec3{1, 1, 0}},
	}}
	s.AddVehicle(c, links)
	s.Prepare()

	grid := 4 * (2*1 + 1)
	// Marker cross is three segments; each plain link is one.
	want := grid + 2*3 + 2*2
	if got := len(s.Lines()); got != want {
		t.Fatalf("vertex count = %d, want %d", got, want)
	}

	// The distance link keeps its world-space endpoints.
	seg := s.Lines()[grid+6:]
	if seg[0].Pos != (common.Vec3{0, 0, 0}) || seg[1].Pos != (common.Vec3{0, 1, 0}) {
		t.Fatalf("distance link endpoints %v -> %v", seg[0].Pos, seg[1].Pos)
	}
}

func TestSpringCoilSpansEndpoints(t *testing.T) {
	s := newTestScene(WithGrid(1.0, 1, 0), WithSpringStyle(0.05, 5, 16))
	c := vehicle.NewChassis()
	p1 := common.Vec3{0, 0, 1}
	p2 := common.Vec3{0, 0, 2}
	s.AddVehicle(c, &stubLinks{links: []vehicle.Link{
		{Kind: vehicle.LinkSpring, P1: p1, P2: p2},
	}})
	s.Prepare()

	grid := 4 * (2*1 + 1)
	coil := s.Lines()[grid+6:] // skip grid and marker cross
	if len(coil) != 2*16 {
		t.Fatalf("coil vertex count = %d, want %d", len(coil), 2*16)
	}
	if coil[0].Pos != p1 {
		t.Fatalf("coil starts at %v, want %v", coil[0].Pos, p1)
	}
	end := coil[len(coil)-1].Pos
	if end.Sub(p2).Len() > 0.06 {
		t.Fatalf("coil ends at %v, want near %v", end, p2)
	}

	// Every coil point stays within the helix radius of the axis.
	for _, v := range coil {
		radial := common.Vec3{v.Pos[0], v.Pos[1], 0}.Len()
		if radial > 0.05+1e-5 {
			t.Fatalf("coil point %v exceeds radius", v.Pos)
		}
	}
}

func TestPrepareIsDeterministic(t *testing.T) {
	build := func() []LineVertex {
		s := newTestScene(WithGrid(1.0, 2, 0), WithPrepWorkers(4))
		for i := 0; i < 8; i++ {
			c := vehicle.NewChassis(vehicle.WithChassisPosition(common.Vec3{float32(i), 0, 0}))
			s.AddVehicle(c, nil)
		}
		s.Prepare()
		out := make([]LineVertex, len(s.Lines()))
		copy(out, s.Lines())
		return out
	}

	a, b := build(), build()
	if len(a) != len(b) {
		t.Fatalf("vertex counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("geometry diverges at vertex %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRemoveVehicle(t *testing.T) {
	s := newTestScene(WithGrid(1.0, 1, 0))
	id := s.AddVehicle(vehicle.NewChassis(), nil)
	if s.Count() != 1 {
		t.Fatalf("count = %d after add", s.Count())
	}
	s.RemoveVehicle(id)
	if s.Count() != 0 {
		t.Fatalf("count = %d after remove", s.Count())
	}
	s.Prepare()
	if got := len(s.Lines()); got != 4*(2*1+1) {
		t.Fatalf("vertex count = %d, want grid only", got)
	}
}

func TestActiveFlag(t *testing.T) {
	s := newTestScene(WithActive(true))
	if !s.Active() {
		t.Fatal("scene not active after WithActive")
	}
	s.SetActive(false)
	if s.Active() {
		t.Fatal("scene still active after SetActive(false)")
	}
}
