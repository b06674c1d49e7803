package scene

import (
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/chassis-go/common"
	"github.com/Carmen-Shannon/chassis-go/engine/camera"
	"github.com/Carmen-Shannon/chassis-go/vehicle"
)

// LineVertex is one endpoint of a line-list segment, in world space.
type LineVertex struct {
	Pos   common.Vec3
	Color [3]float32
}

// Line segment colors.
var (
	gridColor      = [3]float32{0.35, 0.35, 0.35}
	springColor    = [3]float32{0.9, 0.5, 0.1}
	distanceColor  = [3]float32{0.2, 0.4, 0.9}
	revSphereColor = [3]float32{0.9, 0.2, 0.2}
	markerColor    = [3]float32{0.2, 0.9, 0.2}
)

// Scene manages the tracked vehicles and produces the line geometry the
// renderer uploads each frame: a ground grid, the suspension linkage of every
// registered vehicle, and a chassis marker per vehicle. Geometry prep for the
// vehicles fans out across a worker pool. Scenes can be hot-swapped via the
// Active flag. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// AddVehicle registers a vehicle body for drawing. The links provider may
	// be nil for a body with no drawable linkage.
	//
	// Parameters:
	//   - body: the vehicle body (must not be nil)
	//   - links: the body's linkage, or nil
	//
	// Returns:
	//   - uint64: the assigned vehicle ID
	AddVehicle(body vehicle.Body, links vehicle.LinkProvider) uint64

	// RemoveVehicle unregisters a vehicle by ID. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the vehicle's ID
	RemoveVehicle(id uint64)

	// Count returns the number of registered vehicles.
	//
	// Returns:
	//   - int: the vehicle count
	Count() int

	// Prepare rebuilds the frame's line geometry from the current vehicle
	// state. Vehicle linkage prep runs on the scene's worker pool; the ground
	// grid is built once and reused.
	Prepare()

	// Lines returns the line-list vertices built by the last Prepare call,
	// two vertices per segment. The slice is reused across frames; callers
	// must not retain it past the next Prepare.
	//
	// Returns:
	//   - []LineVertex: the frame's line geometry
	Lines() []LineVertex
}

type sceneVehicle struct {
	id    uint64
	body  vehicle.Body
	links vehicle.LinkProvider
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	cam    camera.Camera

	vehicles map[uint64]*sceneVehicle
	nextID   uint64

	gridSpacing    float32
	gridHalfExtent int
	gridHeight     float32
	gridLines      []LineVertex // built lazily, invalidated by grid options

	springRadius   float32
	springTurns    int
	springSegments int

	// Per-vehicle scratch buffers reused across frames, plus the coalesced
	// output slice.
	scratch map[uint64][]LineVertex
	lines   []LineVertex

	// prepPool manages a bounded set of reusable goroutines for per-vehicle
	// geometry prep. Workers persist across frames.
	prepPool    worker.DynamicWorkerPool
	prepWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		active:         false,
		cam:            cam,
		vehicles:       make(map[uint64]*sceneVehicle),
		nextID:         1,
		gridSpacing:    1.0,
		gridHalfExtent: 20,
		gridHeight:     0,
		springRadius:   0.05,
		springTurns:    15,
		springSegments: 80,
		scratch:        make(map[uint64][]LineVertex),
		prepWorkers:    max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the prep pool after options so WithPrepWorkers can override
	// the default. Queue size of 64 covers any realistic vehicle count.
	s.prepPool = worker.NewDynamicWorkerPool(s.prepWorkers, 64, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) AddVehicle(body vehicle.Body, links vehicle.LinkProvider) uint64 {
	if body == nil {
		panic("scene: AddVehicle requires a non-nil Body")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.vehicles[id] = &sceneVehicle{id: id, body: body, links: links}
	return id
}

func (s *scene) RemoveVehicle(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vehicles, id)
	delete(s.scratch, id)
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vehicles)
}

func (s *scene) Prepare() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gridLines == nil {
		s.gridLines = buildGrid(s.gridSpacing, s.gridHalfExtent, s.gridHeight)
	}

	// Phase 1: parallel per-vehicle prep — tasks write only their own result
	// slot, so no locking is needed inside the pool. A WaitGroup provides the
	// per-frame barrier since the pool's own Wait blocks until workers
	// idle-exit.
	ids := make([]uint64, 0, len(s.vehicles))
	for id := range s.vehicles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var wg sync.WaitGroup
	results := make([][]LineVertex, len(ids))
	for i, id := range ids {
		wg.Add(1)
		slot := i
		vCap := s.vehicles[id]
		buf := s.scratch[id][:0]
		s.prepPool.SubmitTask(worker.Task{
			ID: int(id),
			Do: func() (any, error) {
				defer wg.Done()
				results[slot] = s.buildVehicle(buf, vCap)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2: coalesce in ID order so the output is stable frame to frame,
	// and recycle the grown buffers for the next frame.
	out := s.lines[:0]
	out = append(out, s.gridLines...)
	for i, id := range ids {
		s.scratch[id] = results[i]
		out = append(out, results[i]...)
	}
	s.lines = out
}

func (s *scene) Lines() []LineVertex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lines
}

// buildVehicle appends one vehicle's linkage and chassis marker to buf.
// Link endpoints are already in world space; only the marker needs the body
// frame. Safe to run concurrently with other vehicles' builds: it touches
// no shared state.
func (s *scene) buildVehicle(buf []LineVertex, v *sceneVehicle) []LineVertex {
	frame := vehicle.Frame(v.body)

	// Chassis marker: a small axis cross at the body origin.
	const markerLen = 0.5
	for _, axis := range []common.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		tip := frame.TransformPoint(axis.Scale(markerLen))
		buf = appendSegment(buf, frame.Pos, tip, markerColor)
	}

	if v.links == nil {
		return buf
	}
	for _, link := range v.links.Links() {
		switch link.Kind {
		case vehicle.LinkSpring:
			buf = s.appendSpring(buf, link.P1, link.P2)
		case vehicle.LinkDistance:
			buf = appendSegment(buf, link.P1, link.P2, distanceColor)
		case vehicle.LinkRevoluteSpherical:
			buf = appendSegment(buf, link.P1, link.P2, revSphereColor)
		}
	}
	return buf
}

// appendSpring draws a spring as a helix coil around the P1-P2 axis.
func (s *scene) appendSpring(buf []LineVertex, p1, p2 common.Vec3) []LineVertex {
	axis := p2.Sub(p1)
	length := axis.Len()
	if length == 0 {
		return buf
	}
	dir := axis.Scale(1 / length)

	// Orthonormal basis perpendicular to the spring axis.
	ref := common.Vec3{0, 0, 1}
	if math.Abs(float64(dir.Dot(ref))) > 0.99 {
		ref = common.Vec3{1, 0, 0}
	}
	u := dir.Cross(ref).Normalized()
	w := dir.Cross(u)

	prev := p1
	for i := 1; i <= s.springSegments; i++ {
		t := float32(i) / float32(s.springSegments)
		phase := float64(t) * float64(s.springTurns) * 2 * math.Pi
		radial := u.Scale(s.springRadius * float32(math.Cos(phase))).
			Add(w.Scale(s.springRadius * float32(math.Sin(phase))))
		p := p1.Add(dir.Scale(t * length)).Add(radial)
		buf = appendSegment(buf, prev, p, springColor)
		prev = p
	}
	return buf
}

func appendSegment(buf []LineVertex, a, b common.Vec3, color [3]float32) []LineVertex {
	return append(buf,
		LineVertex{Pos: a, Color: color},
		LineVertex{Pos: b, Color: color},
	)
}

// buildGrid lays out a square line grid in the Z = height plane, centered on
// the origin.
func buildGrid(spacing float32, halfExtent int, height float32) []LineVertex {
	count := 2*halfExtent + 1
	lines := make([]LineVertex, 0, 4*count)
	extent := spacing * float32(halfExtent)
	for i := -halfExtent; i <= halfExtent; i++ {
		o := spacing * float32(i)
		lines = appendSegment(lines, common.Vec3{o, -extent, height}, common.Vec3{o, extent, height}, gridColor)
		lines = appendSegment(lines, common.Vec3{-extent, o, height}, common.Vec3{extent, o, height}, gridColor)
	}
	return lines
}
