package hud

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/chassis-go/vehicle"
)

func TestLayoutBodyOnly(t *testing.T) {
	c := vehicle.NewChassis()
	c.SetSpeed(15)

	o := NewOverlay(10, 10)
	texts, gauges := o.Layout("Chase", c, nil)

	if len(texts) != 1 || !strings.Contains(texts[0].Text, "Chase") {
		t.Fatalf("texts = %v, want one mode label", texts)
	}
	if len(gauges) != 1 {
		t.Fatalf("gauge count = %d, want 1 (speed only)", len(gauges))
	}
	if got := gauges[0].Fraction; got != 0.5 {
		t.Fatalf("speed fraction = %v, want 0.5", got)
	}
	if gauges[0].Symmetric {
		t.Fatal("speed gauge should be a linear fill")
	}
}

func TestLayoutWithPowertrain(t *testing.T) {
	c := vehicle.NewChassis()
	c.SetSpeed(12)
	pt := vehicle.NewDemoPowertrain(c, true)

	o := NewOverlay(0, 0)
	_, gauges := o.Layout("Follow", c, pt)

	// Speed, RPM, engine torque, converter slip/in/out, gear, 4 wheels.
	if len(gauges) != 11 {
		t.Fatalf("gauge count = %d, want 11", len(gauges))
	}

	// Rows stack downward without overlap.
	for i := 1; i < len(gauges); i++ {
		if gauges[i].Y <= gauges[i-1].Y {
			t.Fatalf("gauge %d at y=%d not below gauge %d at y=%d", i, gauges[i].Y, i-1, gauges[i-1].Y)
		}
	}

	for _, g := range gauges {
		if g.Fraction > 1 || g.Fraction < -1 {
			t.Fatalf("gauge %q fraction %v out of range", g.Label, g.Fraction)
		}
		// The stats panel draws every gauge as a linear fill; symmetric
		// bars are opt-in for embedders only.
		if g.Symmetric {
			t.Fatalf("gauge %q laid out symmetric", g.Label)
		}
	}

	last := gauges[len(gauges)-4]
	if !strings.Contains(last.Label, "FL") {
		t.Fatalf("first wheel gauge %q, want FL label", last.Label)
	}
}

func TestLayoutGearLabels(t *testing.T) {
	c := vehicle.NewChassis()
	pt := vehicle.NewDemoPowertrain(c, false)
	o := NewOverlay(0, 0)

	find := func() string {
		_, gauges := o.Layout("Chase", c, pt)
		for _, g := range gauges {
			if strings.HasPrefix(g.Label, "Gear:") {
				return g.Label
			}
		}
		t.Fatal("no gear gauge")
		return ""
	}

	if label := find(); !strings.Contains(label, "neutral") {
		t.Fatalf("at rest: %q", label)
	}
	c.SetSpeed(10)
	if label := find(); !strings.Contains(label, "forward") {
		t.Fatalf("forward: %q", label)
	}
	c.SetSpeed(-2)
	if label := find(); !strings.Contains(label, "reverse") {
		t.Fatalf("reverse: %q", label)
	}
}

func TestBarsGeometry(t *testing.T) {
	gauges := []Gauge{
		// Linear half fill, symmetric negative fill, and an empty gauge.
		{Fraction: 0.5, X: 10, Y: 10, W: 100, H: 10},
		{Fraction: -0.5, Symmetric: true, X: 10, Y: 30, W: 100, H: 10},
		{Fraction: 0, X: 10, Y: 50, W: 100, H: 10},
	}
	bars := Bars(gauges)

	// Two bars for each filled gauge, background only for the empty one.
	if len(bars) != 5 {
		t.Fatalf("bar count = %d, want 5", len(bars))
	}

	linear := bars[1]
	if linear.X != 10 || linear.W != 50 {
		t.Fatalf("linear fill at x=%v w=%v, want x=10 w=50", linear.X, linear.W)
	}

	// Negative symmetric fill extends left from the center (x=60).
	sym := bars[3]
	if sym.X != 35 || sym.W != 25 {
		t.Fatalf("symmetric fill at x=%v w=%v, want x=35 w=25", sym.X, sym.W)
	}
	if sym.Color != barNegative {
		t.Fatalf("negative fill color = %v", sym.Color)
	}
}

func TestEnginePitchRefreshInterval(t *testing.T) {
	p := NewEnginePitch(20)

	if p.Started() {
		t.Fatal("tracker started before any refresh")
	}
	for i := 0; i < 20; i++ {
		if p.Update(800) {
			t.Fatalf("refreshed early at tick %d", i)
		}
	}
	if !p.Update(800) {
		t.Fatal("no refresh on tick 21")
	}
	if !p.Started() {
		t.Fatal("tracker not started after refresh")
	}
	// 800 rad/s is ~7639 RPM; pitch ~0.95.
	if got := p.Pitch(); got < 0.9 || got > 1.0 {
		t.Fatalf("pitch = %v, want ~0.95", got)
	}
}

func TestEnginePitchFloor(t *testing.T) {
	p := NewEnginePitch(1)
	p.Update(0)
	p.Update(0)
	if got := p.Pitch(); got != 0.1 {
		t.Fatalf("idle pitch = %v, want floor 0.1", got)
	}
}

func TestEnginePitchIndependentInstances(t *testing.T) {
	a := NewEnginePitch(1)
	b := NewEnginePitch(1)
	for i := 0; i < 3; i++ {
		a.Update(800)
	}
	if b.Started() {
		t.Fatal("second tracker shares state with the first")
	}
}
