package input

import (
	"testing"

	"github.com/Carmen-Shannon/chassis-go/common"
	"github.com/Carmen-Shannon/chassis-go/engine/camera"
	"github.com/Carmen-Shannon/chassis-go/vehicle"
)

func newTestController() camera.ChaseCamera {
	cc := camera.NewChaseCamera(vehicle.NewChassis())
	cc.Initialize(common.Vec3{0, 0, 1}, 6.0, 0.5)
	return cc
}

func TestNewMapperNilControllerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil controller")
		}
	}()
	NewMapper(nil)
}

func TestDefaultModeBindings(t *testing.T) {
	cc := newTestController()
	m := NewMapper(cc)

	cases := []struct {
		key  uint32
		want camera.State
	}{
		{common.Key2, camera.Follow},
		{common.Key3, camera.Track},
		{common.Key4, camera.Inside},
		{common.Key1, camera.Chase},
	}
	for _, c := range cases {
		if !m.HandleKey(c.key) {
			t.Fatalf("key %d not handled", c.key)
		}
		if cc.State() != c.want {
			t.Fatalf("key %d: state %v, want %v", c.key, cc.State(), c.want)
		}
	}
}

func TestZoomKeysChangeDistance(t *testing.T) {
	cc := newTestController()
	m := NewMapper(cc)

	m.HandleKey(common.KeyDown) // zoom out
	cc.Advance(0.01)
	if cc.Distance() <= 6.0 {
		t.Fatalf("distance %v after zoom out, want > 6", cc.Distance())
	}

	m.HandleKey(common.KeyUp) // zoom in
	m.HandleKey(common.KeyUp)
	cc.Advance(0.01)
	if cc.Distance() >= 6.0 {
		t.Fatalf("distance %v after zooming back in, want < 6", cc.Distance())
	}
}

func TestScrollZooms(t *testing.T) {
	cc := newTestController()
	m := NewMapper(cc)

	m.HandleScroll(-1.5)
	cc.Advance(0.01)
	if cc.Distance() <= 6.0 {
		t.Fatalf("distance %v after scroll down, want > 6", cc.Distance())
	}
	m.HandleScroll(0)
	cc.Advance(0.01)
	if cc.Distance() <= 6.0 {
		t.Fatal("zero scroll delta changed the distance")
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	cc := newTestController()
	m := NewMapper(cc)
	if m.HandleKey(9999) {
		t.Fatal("unbound key reported handled")
	}
	if cc.State() != camera.Chase {
		t.Fatalf("state %v changed by unbound key", cc.State())
	}
}

func TestViolationReporter(t *testing.T) {
	cc := newTestController()
	called := false
	m := NewMapper(cc, WithViolationReporter(func() { called = true }))

	if !m.HandleKey(common.KeyV) {
		t.Fatal("V key not handled")
	}
	if !called {
		t.Fatal("violation reporter not invoked")
	}
}

func TestCustomBinding(t *testing.T) {
	cc := newTestController()
	m := NewMapper(cc, WithBinding(common.KeySpace, ActionModeInside))
	m.HandleKey(common.KeySpace)
	if cc.State() != camera.Inside {
		t.Fatalf("state %v, want Inside via custom binding", cc.State())
	}
}
