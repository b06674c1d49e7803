// package hud lays out the driver stats overlay: the camera mode label and
// the speed/powertrain gauges. It produces drawing primitives (text boxes and
// gauge bars in pixel coordinates); rasterizing them is the renderer's job.
package hud

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/chassis-go/vehicle"
)

// TextBox is a labeled box drawn at a pixel position.
type TextBox struct {
	Text       string
	X, Y, W, H int
}

// Gauge is a horizontal bar gauge. Fraction is the filled portion in [0, 1];
// symmetric gauges center at zero and fill left or right for signed values
// in [-1, 1].
type Gauge struct {
	Label      string
	Fraction   float32
	Symmetric  bool
	X, Y, W, H int
}

// Overlay builds the per-frame HUD layout from the active camera mode and
// vehicle telemetry.
type Overlay interface {
	// Layout produces the text boxes and gauges for one frame.
	//
	// Parameters:
	//   - stateName: the active camera mode label
	//   - body: the tracked body (speed gauge)
	//   - pt: powertrain telemetry, or nil to omit the powertrain gauges
	//
	// Returns:
	//   - []TextBox: text boxes to draw
	//   - []Gauge: gauge bars to draw
	Layout(stateName string, body vehicle.Body, pt vehicle.Powertrain) ([]TextBox, []Gauge)
}

// overlayImpl lays gauges out in a single column, mirroring the stats panel
// of the original vehicle HUD.
type overlayImpl struct {
	x, y int
}

var _ Overlay = &overlayImpl{}

// Gauge normalization constants: full-scale values for each bar.
const (
	fullScaleSpeed       = 30.0   // m/s
	fullScaleRPM         = 7000.0 // rev/min
	fullScaleTorque      = 600.0  // Nm
	fullScaleWheelTorque = 5000.0 // Nm
	gaugeWidth           = 120
	gaugeHeight          = 15
)

// NewOverlay creates an Overlay anchored at the given pixel position.
//
// Parameters:
//   - x, y: top-left corner of the stats column in pixels
//
// Returns:
//   - Overlay: the newly created overlay
func NewOverlay(x, y int) Overlay {
	return &overlayImpl{x: x, y: y}
}

func (o *overlayImpl) Layout(stateName string, body vehicle.Body, pt vehicle.Powertrain) ([]TextBox, []Gauge) {
	texts := []TextBox{{
		Text: fmt.Sprintf("Camera mode: %s", stateName),
		X:    o.x, Y: o.y, W: gaugeWidth, H: gaugeHeight,
	}}

	// Every gauge is a linear fill from the left edge; signed values show as
	// red leftward fills. Symmetric center-out bars stay available on Gauge
	// for embedders that want them.
	row := o.y + 30
	var gauges []Gauge
	addGauge := func(label string, fraction float32) {
		gauges = append(gauges, Gauge{
			Label:    label,
			Fraction: clampFraction(fraction),
			X:        o.x, Y: row, W: gaugeWidth, H: gaugeHeight,
		})
		row += 20
	}

	speed := body.Speed()
	addGauge(fmt.Sprintf("Speed: %+.2f", speed), speed/fullScaleSpeed)

	if pt == nil {
		return texts, gauges
	}

	rpm := pt.MotorSpeed() * 60 / (2 * math.Pi)
	addGauge(fmt.Sprintf("Eng. RPM: %+.2f", rpm), rpm/fullScaleRPM)
	addGauge(fmt.Sprintf("Eng. Nm: %+.2f", pt.MotorTorque()), pt.MotorTorque()/fullScaleTorque)
	addGauge(fmt.Sprintf("T.conv. slip: %+.2f", pt.TorqueConverterSlippage()), pt.TorqueConverterSlippage())
	addGauge(fmt.Sprintf("T.conv. in  Nm: %+.2f", pt.TorqueConverterInputTorque()), pt.TorqueConverterInputTorque()/fullScaleTorque)
	addGauge(fmt.Sprintf("T.conv. out Nm: %+.2f", pt.TorqueConverterOutputTorque()), pt.TorqueConverterOutputTorque()/fullScaleTorque)

	gear := pt.Gear()
	var gearLabel string
	switch pt.Mode() {
	case vehicle.DriveForward:
		gearLabel = fmt.Sprintf("Gear: forward, n.gear: %d", gear)
	case vehicle.DriveReverse:
		gearLabel = "Gear: reverse"
	default:
		gearLabel = "Gear: neutral"
	}
	addGauge(gearLabel, float32(gear)/4.0)

	labels2 := [2]string{"L", "R"}
	labels4 := [4]string{"FL", "FR", "RL", "RR"}
	for i, torque := range pt.WheelTorques() {
		var wheel string
		if len(pt.WheelTorques()) == 4 && i < len(labels4) {
			wheel = labels4[i]
		} else if i < len(labels2) {
			wheel = labels2[i]
		}
		addGauge(fmt.Sprintf("Torque wheel %s: %+.2f", wheel, torque), torque/fullScaleWheelTorque)
	}

	return texts, gauges
}

// Bar is a filled rectangle in pixel space, ready for the overlay pass.
type Bar struct {
	X, Y, W, H float32
	Color      [3]float32
}

// Bar colors: dark background, green fill, red for negative fills.
var (
	barBackground = [3]float32{0.15, 0.15, 0.15}
	barFill       = [3]float32{0.2, 0.8, 0.2}
	barNegative   = [3]float32{0.8, 0.2, 0.2}
)

// Bars converts gauges into drawable rectangles: one background per gauge
// plus a fill sized by the gauge fraction. Symmetric gauges fill outward from
// the center; linear gauges fill from the left edge.
//
// Parameters:
//   - gauges: the gauges from Layout
//
// Returns:
//   - []Bar: the rectangles to draw, backgrounds first per gauge
func Bars(gauges []Gauge) []Bar {
	bars := make([]Bar, 0, 2*len(gauges))
	for _, g := range gauges {
		x, y := float32(g.X), float32(g.Y)
		w, h := float32(g.W), float32(g.H)
		bars = append(bars, Bar{X: x, Y: y, W: w, H: h, Color: barBackground})

		f := g.Fraction
		color := barFill
		if f < 0 {
			color = barNegative
		}
		if g.Symmetric {
			half := w / 2
			fillW := abs32(f) * half
			if fillW == 0 {
				continue
			}
			if f >= 0 {
				bars = append(bars, Bar{X: x + half, Y: y, W: fillW, H: h, Color: color})
			} else {
				bars = append(bars, Bar{X: x + half - fillW, Y: y, W: fillW, H: h, Color: color})
			}
		} else {
			fillW := abs32(f) * w
			if fillW == 0 {
				continue
			}
			bars = append(bars, Bar{X: x, Y: y, W: fillW, H: h, Color: color})
		}
	}
	return bars
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func clampFraction(f float32) float32 {
	if f > 1 {
		return 1
	}
	if f < -1 {
		return -1
	}
	return f
}

// EnginePitch tracks the engine-sound playback speed from motor speed,
// refreshing only every few ticks to keep the audio pitch from jittering.
// State is per-instance; two vehicles get two independent trackers.
type EnginePitch struct {
	mu *sync.Mutex

	ticksBetween int
	counter      int
	pitch        float32
	started      bool
}

// NewEnginePitch creates a pitch tracker refreshing every ticksBetween
// update calls.
//
// Parameters:
//   - ticksBetween: ticks between pitch refreshes (defaults to 20 if <= 0)
//
// Returns:
//   - *EnginePitch: the tracker
func NewEnginePitch(ticksBetween int) *EnginePitch {
	if ticksBetween <= 0 {
		ticksBetween = 20
	}
	return &EnginePitch{
		mu:           &sync.Mutex{},
		ticksBetween: ticksBetween,
		pitch:        0.1,
	}
}

// Update feeds one tick of motor speed into the tracker.
//
// Parameters:
//   - motorSpeed: engine angular speed in rad/s
//
// Returns:
//   - bool: true if the pitch was refreshed this tick
func (e *EnginePitch) Update(motorSpeed float32) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.counter++
	if e.counter <= e.ticksBetween {
		return false
	}
	e.counter = 0

	rpm := motorSpeed * 60 / (2 * math.Pi)
	pitch := rpm / 8000
	if pitch < 0.1 {
		pitch = 0.1
	}
	e.pitch = pitch
	e.started = true
	return true
}

// Pitch returns the current playback speed multiplier.
//
// Returns:
//   - float32: playback speed (>= 0.1)
func (e *EnginePitch) Pitch() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pitch
}

// Started reports whether the tracker has produced its first refresh, i.e.
// whether looped engine audio should be unpaused.
//
// Returns:
//   - bool: true after the first refresh
func (e *EnginePitch) Started() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}
