// package input maps raw key codes and scroll deltas onto camera commands.
// The mapping layer keeps the camera controller free of any windowing
// library: the window forwards opaque key codes, the mapper translates them,
// and only the mapper calls into the controller.
package input

import (
	"sync"

	"github.com/Carmen-Shannon/chassis-go/common"
	"github.com/Carmen-Shannon/chassis-go/engine/camera"
)

// Action is a camera command produced by the input mapping.
type Action int

const (
	ActionNone Action = iota
	ActionZoomIn
	ActionZoomOut
	ActionTurnLeft
	ActionTurnRight
	ActionModeChase
	ActionModeFollow
	ActionModeTrack
	ActionModeInside
	ActionReportViolations
)

// Mapper translates key codes into camera commands and dispatches them to an
// attached controller. Thread-safe: the window's input callbacks may fire on
// a different goroutine than the simulation tick.
type Mapper interface {
	// Bind associates a key code with an action, replacing any previous
	// binding for that key.
	//
	// Parameters:
	//   - keyCode: the raw key code
	//   - action: the action to dispatch when the key is pressed
	Bind(keyCode uint32, action Action)

	// Action returns the action bound to a key code, or ActionNone.
	//
	// Parameters:
	//   - keyCode: the raw key code
	//
	// Returns:
	//   - Action: the bound action
	Action(keyCode uint32) Action

	// HandleKey maps a key press onto its bound action and dispatches it.
	//
	// Parameters:
	//   - keyCode: the raw key code from the window
	//
	// Returns:
	//   - bool: true if the key was bound and the action dispatched
	HandleKey(keyCode uint32) bool

	// HandleScroll maps a scroll delta onto zoom commands: positive deltas
	// zoom in, negative zoom out.
	//
	// Parameters:
	//   - delta: the scroll delta
	HandleScroll(delta float32)

	// Dispatch applies an action to the attached controller directly.
	//
	// Parameters:
	//   - action: the action to apply
	Dispatch(action Action)
}

type mapperImpl struct {
	mu *sync.Mutex

	controller camera.ChaseCamera
	bindings   map[uint32]Action

	// onReport is invoked for ActionReportViolations; nil disables it.
	onReport func()
}

var _ Mapper = &mapperImpl{}

// NewMapper creates a Mapper dispatching to the given controller, with the
// default bindings: arrow keys zoom and orbit, keys 1-4 select the camera
// mode, V reports constraint violations.
//
// Parameters:
//   - controller: the camera controller commands apply to (must not be nil)
//   - options: functional options to adjust the mapping
//
// Returns:
//   - Mapper: the newly created mapper
func NewMapper(controller camera.ChaseCamera, options ...MapperOption) Mapper {
	if controller == nil {
		panic("input: NewMapper requires a non-nil ChaseCamera")
	}

	m := &mapperImpl{
		mu:         &sync.Mutex{},
		controller: controller,
		bindings: map[uint32]Action{
			common.KeyUp:    ActionZoomIn,
			common.KeyDown:  ActionZoomOut,
			common.KeyLeft:  ActionTurnLeft,
			common.KeyRight: ActionTurnRight,
			common.Key1:     ActionModeChase,
			common.Key2:     ActionModeFollow,
			common.Key3:     ActionModeTrack,
			common.Key4:     ActionModeInside,
			common.KeyV:     ActionReportViolations,
		},
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *mapperImpl) Bind(keyCode uint32, action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings[keyCode] = action
}

func (m *mapperImpl) Action(keyCode uint32) Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bindings[keyCode]
}

func (m *mapperImpl) HandleKey(keyCode uint32) bool {
	m.mu.Lock()
	action, ok := m.bindings[keyCode]
	m.mu.Unlock()
	if !ok || action == ActionNone {
		return false
	}
	m.Dispatch(action)
	return true
}

func (m *mapperImpl) HandleScroll(delta float32) {
	switch {
	case delta > 0:
		m.Dispatch(ActionZoomIn)
	case delta < 0:
		m.Dispatch(ActionZoomOut)
	}
}

func (m *mapperImpl) Dispatch(action Action) {
	switch action {
	case ActionZoomIn:
		m.controller.Zoom(1)
	case ActionZoomOut:
		m.controller.Zoom(-1)
	case ActionTurnLeft:
		m.controller.Turn(1)
	case ActionTurnRight:
		m.controller.Turn(-1)
	case ActionModeChase:
		m.controller.SetState(camera.Chase)
	case ActionModeFollow:
		m.controller.SetState(camera.Follow)
	case ActionModeTrack:
		m.controller.SetState(camera.Track)
	case ActionModeInside:
		m.controller.SetState(camera.Inside)
	case ActionReportViolations:
		m.mu.Lock()
		report := m.onReport
		m.mu.Unlock()
		if report != nil {
			report()
		}
	}
}
