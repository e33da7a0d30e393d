package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"DarkForest/internal/config"
	"DarkForest/internal/controls"
	"DarkForest/internal/events"
	"DarkForest/internal/logger"
	"DarkForest/internal/renderer"
	"DarkForest/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrInit marks failures to bring up the window, the GL context, the
// shaders or the scene. Nothing else is set up after one.
var ErrInit = errors.New("initialization failed")

// Session owns everything that lives as long as the window: the renderer,
// the camera and its controller, the event bus and the redraw ticker.
type Session struct {
	cfg *config.Config

	window     *glfw.Window
	renderer   *renderer.OpenGLRenderer
	camera     *renderer.Camera
	controller *controls.Controller
	bus        *events.Bus
	ticker     *Ticker
	metrics    *sessionMetrics
	world      *scene.World

	// keyMaps carries reloaded key tables from the config watcher to the
	// window thread.
	keyMaps chan controls.KeyMap
	// glfwMu orders wake against glfw shutdown: PostEmptyEvent from another
	// goroutine is only valid while glfw is initialised.
	glfwMu         sync.Mutex
	glfwLive       bool
	postEmptyEvent func()
	terminateGLFW  func()
}

func NewSession(cfg *config.Config) (*Session, error) {
	keys, err := cfg.KeyMap()
	if err != nil {
		return nil, fmt.Errorf("invalid key table: %w", err)
	}

	metrics, err := newSessionMetrics()
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg: cfg,
		renderer: renderer.NewOpenGLRenderer(
			lightingFromConfig(cfg.Lights),
			fogFromConfig(cfg.Fog),
			cfg.Render.FrustumCulling,
		),
		camera:  renderer.NewDefaultCamera(int32(cfg.Window.Width), int32(cfg.Window.Height)),
		bus:     events.NewBus(),
		metrics: metrics,
		keyMaps: make(chan controls.KeyMap, 1),

		postEmptyEvent: glfw.PostEmptyEvent,
		terminateGLFW:  glfw.Terminate,
	}
	s.controller = controls.NewController(cfg.Heading(), keys, s)
	s.controller.Place(mgl32.Vec3(cfg.Player.StartPosition))
	return s, nil
}

// CameraPose and SetCameraPose expose the camera to the controller.
func (s *Session) CameraPose() (position, target mgl32.Vec3) {
	return s.camera.Pose()
}

func (s *Session) SetCameraPose(position, target mgl32.Vec3) {
	s.camera.SetPose(position, target)
}

// RenderFrame draws and presents one frame in response to input.
func (s *Session) RenderFrame() {
	s.draw("input")
}

func (s *Session) draw(cause string) {
	if s.window == nil {
		return
	}
	s.renderer.Render(s.camera)
	s.window.SwapBuffers()
	s.metrics.frame(cause)
}

// Run opens the window and drives the scene until the window closes or ctx
// is cancelled. It must be called from the main goroutine. Everything it
// sets up is released, in reverse order, before it returns.
func (s *Session) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var cleanup renderer.Unwind
	defer cleanup.Unwind()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: could not initialize glfw: %w", ErrInit, err)
	}
	s.markGLFWLive()
	cleanup.Add(s.shutdownGLFW)

	if err := s.openWindow(); err != nil {
		return err
	}
	cleanup.Add(func() {
		s.window.Destroy()
		s.window = nil
	})

	fbWidth, fbHeight := s.window.GetFramebufferSize()
	if err := s.renderer.Init(int32(fbWidth), int32(fbHeight)); err != nil {
		return initError(err)
	}
	cleanup.Add(s.renderer.Cleanup)
	s.resize(fbWidth, fbHeight)

	if err := s.buildScene(); err != nil {
		return initError(err)
	}

	cleanup.Add(s.subscribe())

	s.window.SetKeyCallback(s.keyCallback)
	s.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		s.resize(width, height)
	})

	s.cfg.Watch(s.reloadKeys)

	s.ticker = NewTicker(s.cfg.TickInterval(), s.wake)
	s.ticker.Start()
	cleanup.Add(func() {
		s.ticker.Stop()
		logger.Log.Info("Redraw ticker stopped", zap.Uint64("coalescedTicks", s.ticker.Coalesced()))
	})

	stopWake := context.AfterFunc(ctx, s.wake)
	cleanup.Add(func() { stopWake() })

	logger.Log.Info("Dark Forest running",
		zap.Int("width", s.cfg.Window.Width),
		zap.Int("height", s.cfg.Window.Height),
		zap.Duration("tick", s.cfg.TickInterval()),
		zap.Int("keyHandlers", s.bus.Count(events.KeyDown)+s.bus.Count(events.KeyUp)),
		zap.Int("tickHandlers", s.bus.Count(events.Tick)))

	s.draw("start")
	for !s.window.ShouldClose() {
		glfw.WaitEvents()
		if ctx.Err() != nil {
			logger.Log.Info("Context cancelled, closing window")
			break
		}
		s.drain()
	}
	return nil
}

func (s *Session) openWindow() error {
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w := s.cfg.Window
	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: could not create glfw window: %w", ErrInit, err)
	}
	if w.X >= 0 && w.Y >= 0 {
		window.SetPos(w.X, w.Y)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	s.window = window
	return nil
}

func (s *Session) buildScene() error {
	layout, err := scene.LoadLayout(s.cfg.Scene.File)
	if err != nil {
		return err
	}
	start := s.cfg.Player.StartPosition
	world, err := scene.Build(layout, s.cfg.Scene.Seed, mgl32.Vec2{start[0], start[2]}, s.renderer)
	if err != nil {
		return err
	}
	skybox, err := renderer.CreateGradientSkybox(world.Horizon, world.Zenith)
	if err != nil {
		return fmt.Errorf("sky box: %w", err)
	}
	s.renderer.SetSkybox(skybox)
	s.world = world
	return nil
}

// subscribe wires the controller and the redraw to the bus and returns a
// func that undoes it.
func (s *Session) subscribe() func() {
	subs := []events.Subscription{
		s.bus.Subscribe(events.KeyDown, func(ev events.Event) {
			handled := s.controller.HandleKeyDown(controls.KeyCode(ev.Key))
			s.metrics.input(handled, ev.Key)
		}),
		s.bus.Subscribe(events.KeyUp, func(ev events.Event) {
			s.controller.HandleKeyUp(controls.KeyCode(ev.Key))
		}),
		s.bus.Subscribe(events.Tick, func(events.Event) {
			s.draw("tick")
		}),
	}
	return func() {
		for _, sub := range subs {
			sub.Cancel()
		}
	}
}

func (s *Session) keyCallback(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape {
		if action == glfw.Press {
			w.SetShouldClose(true)
		}
		return
	}

	switch action {
	case glfw.Press, glfw.Repeat:
		s.bus.Publish(events.Event{Type: events.KeyDown, Key: int(key)})
	case glfw.Release:
		s.bus.Publish(events.Event{Type: events.KeyUp, Key: int(key)})
	}
}

// drain handles whatever the ticker and the config watcher queued while the
// loop was waiting.
func (s *Session) drain() {
	for {
		select {
		case delta := <-s.ticker.C():
			s.bus.Publish(events.Event{Type: events.Tick, Delta: delta})
		case keys := <-s.keyMaps:
			s.controller.SetKeyMap(keys)
			logger.Log.Info("Key table updated", zap.Int("bindings", len(keys)))
		default:
			return
		}
	}
}

// reloadKeys runs on the config watcher's goroutine. Only the latest table
// is kept.
func (s *Session) reloadKeys(cfg *config.Config) {
	keys, err := cfg.KeyMap()
	if err != nil {
		logger.Log.Warn("Ignoring invalid key table", zap.Error(err))
		return
	}
	select {
	case <-s.keyMaps:
	default:
	}
	select {
	case s.keyMaps <- keys:
	default:
	}
	s.wake()
}

// wake unblocks glfw.WaitEvents from any goroutine. It does nothing before
// glfw is initialised or once shutdownGLFW has started.
func (s *Session) wake() {
	s.glfwMu.Lock()
	defer s.glfwMu.Unlock()
	if s.glfwLive {
		s.postEmptyEvent()
	}
}

func (s *Session) markGLFWLive() {
	s.glfwMu.Lock()
	s.glfwLive = true
	s.glfwMu.Unlock()
}

// shutdownGLFW terminates glfw while holding the lock wake takes, so no
// wake can slip in between the liveness check and Terminate.
func (s *Session) shutdownGLFW() {
	s.glfwMu.Lock()
	defer s.glfwMu.Unlock()
	s.glfwLive = false
	s.terminateGLFW()
}

func (s *Session) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.renderer.UpdateViewport(int32(width), int32(height))
	s.camera.SetAspectRatio(float32(width) / float32(height))
}

func initError(err error) error {
	return fmt.Errorf("%w: %w", ErrInit, err)
}

func lightingFromConfig(c config.LightsConfig) renderer.Lighting {
	return renderer.Lighting{
		Ambient:          mgl32.Vec3(c.Ambient),
		DirectionalColor: mgl32.Vec3(c.DirectionalColor),
		Direction:        mgl32.Vec3(c.Direction),
	}
}

func fogFromConfig(c config.FogConfig) renderer.Fog {
	return renderer.Fog{Near: c.Near, Far: c.Far, Color: mgl32.Vec3(c.Color)}
}
