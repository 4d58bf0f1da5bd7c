package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/orbit-go/common"
	"github.com/Carmen-Shannon/orbit-go/engine/camera"
	"github.com/Carmen-Shannon/orbit-go/engine/renderer"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene holds a set of sphere primitives together with a Camera and Renderer,
// and traces them into a reusable RGBA framebuffer. Frames are only re-traced
// when the camera reports a pending change, the framebuffer is resized, or the
// sphere set is modified; otherwise the cached framebuffer is returned as-is.
// Scenes can be hot-swapped via the Active flag to switch between different views.
// Thread-safe for concurrent access.
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

	// SetCamera replaces the scene's camera and forces a re-trace on the next frame.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Add adds a sphere to the scene and forces a re-trace on the next frame.
	//
	// Parameters:
	//   - s: the sphere to add
	Add(s Sphere)

	// Clear removes all spheres from the scene.
	Clear()

	// Count returns the number of spheres in the scene.
	//
	// Returns:
	//   - int: count of spheres
	Count() int

	// RenderFrame produces the RGBA framebuffer for the given dimensions,
	// tracing rows in parallel across the scene's worker pool when a re-trace
	// is needed and returning the cached framebuffer otherwise. Consuming the
	// camera's pending-change flag happens here, so a single render loop must
	// be the only caller per frame.
	//
	// The returned slice aliases the scene's internal framebuffer and is valid
	// until the next RenderFrame call.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - []byte: RGBA pixel data, width*height*4 bytes
	//   - bool: true if the frame was freshly traced, false if the cache was reused
	//   - error: an error if the dimensions are invalid or the camera geometry is degenerate
	RenderFrame(width, height int) ([]byte, bool, error)
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	cam    camera.Camera
	r      renderer.Renderer

	spheres []Sphere

	// Flat shading parameters shared by every sphere.
	lightDirection mgl32.Vec3
	ambient        float32
	skyHorizon     mgl32.Vec3
	skyZenith      mgl32.Vec3

	framebuffer []byte
	fbWidth     int
	fbHeight    int
	retrace     bool

	// tracePool manages a bounded set of reusable goroutines for the row-parallel
	// trace phase of RenderFrame. Workers persist across frames, avoiding
	// per-frame goroutine spawn/teardown overhead.
	tracePool    worker.DynamicWorkerPool
	traceWorkers int
	taskID       int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera and renderer. Both are
// required and NewScene panics if either is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		active:         false,
		cam:            cam,
		r:              r,
		spheres:        make([]Sphere, 0, 8),
		lightDirection: mgl32.Vec3{-1, -1, -1}.Normalize(),
		ambient:        0.15,
		skyHorizon:     mgl32.Vec3{1, 1, 1},
		skyZenith:      mgl32.Vec3{0.5, 0.7, 1.0},
		retrace:        true,
		traceWorkers:   max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the trace pool after options so WithTraceWorkers can override the default.
	// Queue size of 256 accommodates a full batch of row tasks with headroom.
	s.tracePool = worker.NewDynamicWorkerPool(s.traceWorkers, 256, 1*time.Second)

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
	s.retrace = true
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Add(sphere Sphere) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spheres = append(s.spheres, sphere)
	s.retrace = true
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spheres = s.spheres[:0]
	s.retrace = true
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.spheres)
}

func (s *scene) RenderFrame(width, height int) ([]byte, bool, error) {
	if width <= 0 || height <= 0 {
		return nil, false, fmt.Errorf("invalid framebuffer dimensions %dx%d", width, height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The pending-change flag is consumed unconditionally so a camera change
	// coinciding with a resize does not leave a stale flag for the next frame.
	cameraChanged := s.cam.ConsumeDirty()
	sizeChanged := width != s.fbWidth || height != s.fbHeight

	if !cameraChanged && !sizeChanged && !s.retrace && s.framebuffer != nil {
		return s.framebuffer, false, nil
	}

	if _, _, _, err := s.cam.BasisVectors(); err != nil {
		return nil, false, err
	}

	if sizeChanged || s.framebuffer == nil {
		s.framebuffer = make([]byte, width*height*common.BytesPerPixel)
		s.fbWidth = width
		s.fbHeight = height
	}
	s.retrace = false

	// Rows write disjoint framebuffer regions, so workers need no locking of
	// their own. The WaitGroup is the frame barrier.
	var wg sync.WaitGroup
	for y := 0; y < height; y++ {
		wg.Add(1)
		row := y
		id := s.taskID
		s.taskID++
		s.tracePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				s.traceRow(row, width, height)
				return nil, nil
			},
		})
	}
	wg.Wait()

	return s.framebuffer, true, nil
}

// traceRow traces one framebuffer row. Called from pool workers while
// RenderFrame holds the mutex, which keeps the sphere set and framebuffer
// stable for the duration of the frame.
func (s *scene) traceRow(row, width, height int) {
	origin := s.cam.Position()
	base := row * width
	for x := 0; x < width; x++ {
		direction, err := s.cam.RayDirection(float32(x), float32(row), width, height)
		if err != nil {
			// Degenerate geometry is rejected before rows are dispatched.
			continue
		}
		common.WritePixel(s.framebuffer, base+x, s.shade(origin, direction))
	}
}

// shade returns the color for a single ray: flat Lambertian shading against
// the nearest sphere, or a vertical sky gradient on a miss.
func (s *scene) shade(origin, direction mgl32.Vec3) mgl32.Vec3 {
	closest := float32(math32.MaxFloat32)
	hitIndex := -1
	for i := range s.spheres {
		if t, ok := s.spheres[i].Hit(origin, direction); ok && t < closest {
			closest = t
			hitIndex = i
		}
	}

	if hitIndex < 0 {
		t := common.Clamp01(0.5 * (direction.Y() + 1.0))
		return common.Lerp(s.skyHorizon, s.skyZenith, t)
	}

	sphere := s.spheres[hitIndex]
	point := origin.Add(direction.Mul(closest))
	normal := sphere.NormalAt(point)
	lambert := math32.Max(normal.Dot(s.lightDirection.Mul(-1)), 0)
	return sphere.Albedo.Mul(s.ambient + (1.0-s.ambient)*lambert)
}
