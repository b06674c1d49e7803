package vehicle

import (
	"math"
	"sync"
)

// DriveMode is the transmission drive mode reported to the HUD.
type DriveMode int

const (
	DriveForward DriveMode = iota
	DriveNeutral
	DriveReverse
)

// Powertrain exposes the telemetry the HUD renders each frame. All values are
// instantaneous samples; the engine never writes through this interface.
type Powertrain interface {
	// MotorSpeed returns the engine angular speed in rad/s.
	MotorSpeed() float32

	// MotorTorque returns the engine output torque in Nm.
	MotorTorque() float32

	// TorqueConverterSlippage returns the converter slip ratio in [0, 1].
	TorqueConverterSlippage() float32

	// TorqueConverterInputTorque returns the converter input torque in Nm.
	TorqueConverterInputTorque() float32

	// TorqueConverterOutputTorque returns the converter output torque in Nm.
	TorqueConverterOutputTorque() float32

	// Gear returns the current transmission gear (1-based, 0 in neutral).
	Gear() int

	// Mode returns the current drive mode.
	Mode() DriveMode

	// WheelTorques returns the per-wheel driveline torques in Nm, one entry
	// per driven wheel. Two entries for a 2WD driveline, four (front axle
	// first) for a 4WD driveline.
	WheelTorques() []float32
}

// demoPowertrain derives plausible telemetry from a chassis' forward speed.
// Used by the examples so the HUD has live gauges without a physics solver.
type demoPowertrain struct {
	mu *sync.Mutex

	body       Body
	gearRatios []float32
	fourWheel  bool
}

var _ Powertrain = &demoPowertrain{}

// NewDemoPowertrain creates a Powertrain whose telemetry is synthesized from
// the given body's speed.
//
// Parameters:
//   - body: the body whose speed drives the synthesized telemetry
//   - fourWheel: report four wheel torques instead of two
//
// Returns:
//   - Powertrain: the demo powertrain
func NewDemoPowertrain(body Body, fourWheel bool) Powertrain {
	return &demoPowertrain{
		mu:         &sync.Mutex{},
		body:       body,
		gearRatios: []float32{3.5, 2.1, 1.4, 1.0},
		fourWheel:  fourWheel,
	}
}

// wheelRadius approximates the tire rolling radius used to convert vehicle
// speed into shaft speeds.
const wheelRadius = 0.3

func (p *demoPowertrain) MotorSpeed() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	speed := float32(math.Abs(float64(p.body.Speed())))
	return speed / wheelRadius * p.gearRatios[p.gearLocked()-1] * 3.0
}

func (p *demoPowertrain) MotorTorque() float32 {
	// Flat synthetic torque curve that falls off with speed.
	return 300 / (1 + p.MotorSpeed()/400)
}

func (p *demoPowertrain) TorqueConverterSlippage() float32 {
	speed := float32(math.Abs(float64(p.body.Speed())))
	slip := 1 / (1 + speed)
	if slip > 1 {
		slip = 1
	}
	return slip
}

func (p *demoPowertrain) TorqueConverterInputTorque() float32 {
	return p.MotorTorque()
}

func (p *demoPowertrain) TorqueConverterOutputTorque() float32 {
	return p.MotorTorque() * (1 + p.TorqueConverterSlippage())
}

func (p *demoPowertrain) Gear() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.body.Speed() == 0 {
		return 0
	}
	return p.gearLocked()
}

// gearLocked picks a gear from speed thresholds. Caller must hold the mutex.
func (p *demoPowertrain) gearLocked() int {
	speed := float32(math.Abs(float64(p.body.Speed())))
	gear := 1 + int(speed/8)
	if gear > len(p.gearRatios) {
		gear = len(p.gearRatios)
	}
	return gear
}

func (p *demoPowertrain) Mode() DriveMode {
	switch speed := p.body.Speed(); {
	case speed > 0:
		return DriveForward
	case speed < 0:
		return DriveReverse
	default:
		return DriveNeutral
	}
}

func (p *demoPowertrain) WheelTorques() []float32 {
	out := p.TorqueConverterOutputTorque()
	if p.fourWheel {
		q := out / 4
		return []float32{q, q, q, q}
	}
	h := out / 2
	return []float32{h, h}
}
