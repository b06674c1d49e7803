package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/chassis-go/common"
	"github.com/Carmen-Shannon/chassis-go/engine/window"
)

// OverlayVertex is one vertex of the HUD overlay pass, in pixel coordinates
// with the origin at the window's top-left corner.
type OverlayVertex struct {
	Pos   [2]float32
	Color [3]float32
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer draws line-list world geometry and a 2D HUD overlay through a GPU
// backend. The per-frame flow is UpdateCamera / UploadLines / UploadOverlay,
// then BeginFrame, DrawLines, DrawOverlay, EndFrame, Present.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// UpdateCamera uploads the view-projection matrix used by the line pass.
	//
	// Parameters:
	//   - viewProjection: the column-major view-projection matrix
	UpdateCamera(viewProjection [16]float32)

	// UploadLines uploads the frame's world line geometry: interleaved
	// position/color vertices, two per segment.
	//
	// Parameters:
	//   - vertexData: the raw vertex bytes (24 bytes per vertex)
	//   - vertexCount: the number of vertices
	UploadLines(vertexData []byte, vertexCount int)

	// UploadOverlay uploads the frame's HUD overlay geometry.
	//
	// Parameters:
	//   - vertices: overlay vertices in pixel coordinates, three per triangle
	UploadOverlay(vertices []OverlayVertex)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	// Must be paired with EndFrame within a single frame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawLines encodes the world line draw within the current render pass.
	DrawLines()

	// DrawOverlay encodes the HUD overlay draw within the current render pass.
	// Call after DrawLines so the overlay composites on top of the scene.
	DrawOverlay()

	// EndFrame ends the render pass and submits the command buffer to the GPU.
	// Does not present the surface — call Present() after EndFrame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type,
// targeting the given window's surface. The backend's pipelines and uniform
// buffers are created up front, so the renderer is ready to draw on return.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window providing the rendering surface
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	if err := r.backend.InitPipelines(); err != nil {
		panic(err)
	}
	// Re-run surface config so the screen uniform created by InitPipelines
	// picks up the initial window size.
	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) UpdateCamera(viewProjection [16]float32) {
	r.backend.WriteCameraMatrix(viewProjection)
}

func (r *renderer) UploadLines(vertexData []byte, vertexCount int) {
	r.backend.UploadLineVertices(vertexData, vertexCount)
}

func (r *renderer) UploadOverlay(vertices []OverlayVertex) {
	r.backend.UploadOverlayVertices(common.SliceToBytes(vertices), len(vertices))
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawLines() {
	r.backend.DrawLines()
}

func (r *renderer) DrawOverlay() {
	r.backend.DrawOverlay()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}
