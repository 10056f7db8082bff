package render

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leterax/go-panorama/internal/openglhelper"
	"github.com/leterax/go-panorama/pkg/locomotion"
	"github.com/leterax/go-panorama/pkg/scene"
)

// Options configures a Renderer.
type Options struct {
	Width  int
	Height int
	Title  string
	VSync  bool

	Camera     CameraOptions
	Orbit      Orbit
	Locomotion locomotion.Config
	Bindings   Bindings

	// Background is the clear colour, RGB in [0, 1].
	Background mgl64.Vec3
	// FloorRadius draws a floor disc of this radius; zero draws none.
	FloorRadius float64
	// Placeholder is sampled by panels whose texture is not ready.
	Placeholder *image.RGBA
}

// Renderer owns the window and drives the frame loop: it uploads the scene,
// advances the camera through a Driver and draws.
type Renderer struct {
	window *openglhelper.Window
	camera *Camera
	scene  *scene.Scene

	input    *locomotion.InputState
	bindings Bindings
	driver   *Driver

	panelShader *openglhelper.Shader
	solidShader *openglhelper.Shader
	buffers     *PanelBufferManager
	floor       *openglhelper.Mesh

	background mgl32.Vec4

	// Timing
	lastFrameTime float64
}

// NewRenderer opens a window and prepares GPU resources for sc.
func NewRenderer(opts Options, sc *scene.Scene) (*Renderer, error) {
	if opts.Bindings == nil {
		opts.Bindings = DefaultBindings()
	}
	if opts.Placeholder == nil {
		opts.Placeholder = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	window, err := openglhelper.NewWindow(opts.Width, opts.Height, opts.Title, opts.VSync)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	camera := NewCamera(opts.Orbit.Eye(0), opts.Camera)
	camera.LookAt(opts.Orbit.Target)
	camera.SetAspect(window.Size())

	controller, err := locomotion.NewController(opts.Locomotion, camera)
	if err != nil {
		window.Close()
		return nil, err
	}
	input := locomotion.NewInputState()

	r := &Renderer{
		window:     window,
		camera:     camera,
		scene:      sc,
		input:      input,
		bindings:   opts.Bindings,
		driver:     NewDriver(camera, controller, input, sc, opts.Orbit),
		background: mgl32.Vec4{float32(opts.Background.X()), float32(opts.Background.Y()), float32(opts.Background.Z()), 1},
	}

	r.panelShader, err = openglhelper.LoadShaderFS(shaderFiles, "shaders/panel.vert", "shaders/panel.frag")
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("failed to load panel shader: %w", err)
	}
	r.solidShader, err = openglhelper.LoadShaderFS(shaderFiles, "shaders/solid.vert", "shaders/solid.frag")
	if err != nil {
		r.panelShader.Delete()
		window.Close()
		return nil, fmt.Errorf("failed to load solid shader: %w", err)
	}

	r.buffers = NewPanelBufferManager(opts.Placeholder)
	if opts.FloorRadius > 0 {
		positions, indices := floorDisc(opts.FloorRadius, floorSegments)
		r.floor = openglhelper.NewPositionMesh(positions, indices, gl.TRIANGLES)
	}

	glw := window.GLFWWindow()
	glw.SetKeyCallback(r.keyCallback)
	glw.SetCursorPosCallback(r.cursorPosCallback)
	glw.SetScrollCallback(r.scrollCallback)
	glw.SetFramebufferSizeCallback(r.framebufferSizeCallback)
	glw.SetFocusCallback(r.focusCallback)

	return r, nil
}

// Run starts the main rendering loop and releases everything on exit.
func (r *Renderer) Run() {
	r.lastFrameTime = glfw.GetTime()
	slog.Info("Renderer running", "controls", "C toggles walk mode, WASD/arrows move, Space jumps, Esc quits")

	for !r.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - r.lastFrameTime
		r.lastFrameTime = currentTime

		r.buffers.Sync(r.scene)
		r.buffers.UploadTextures()

		r.driver.Update(currentTime, deltaTime)

		r.render()

		r.window.SwapBuffers()
		r.window.PollEvents()
	}

	r.Cleanup()
}

func (r *Renderer) render() {
	r.window.Clear(r.background)

	view := r.camera.ViewMatrix()
	projection := r.camera.ProjectionMatrix()

	r.panelShader.Use()
	r.panelShader.SetMat4("view", view)
	r.panelShader.SetMat4("projection", projection)
	r.panelShader.SetVec3("lightPos", mgl32.Vec3(lightPosition))
	r.panelShader.SetFloat("lightIntensity", lightIntensity)
	r.panelShader.SetFloat("hemisphereIntensity", hemisphereIntensity)
	r.buffers.DrawPanels(r.panelShader)

	r.solidShader.Use()
	r.solidShader.SetMat4("view", view)
	r.solidShader.SetMat4("projection", projection)
	if r.floor != nil {
		r.solidShader.SetVec4("color", hexColor(FloorColorHex))
		r.floor.Draw()
	}
	r.solidShader.SetVec4("color", hexColor(BoxColorHex))
	r.buffers.DrawBoxes()
}

// Cleanup frees all resources.
func (r *Renderer) Cleanup() {
	r.buffers.Delete()
	if r.floor != nil {
		r.floor.Delete()
	}
	r.panelShader.Delete()
	r.solidShader.Delete()
	r.window.Close()
}

// Callback functions
func (r *Renderer) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Press {
		switch key {
		case KeyQuit:
			r.window.GLFWWindow().SetShouldClose(true)
			return
		case KeyToggleWalk:
			walking := r.driver.ToggleMode() == ModeWalk
			r.window.SetMouseCaptured(walking)
			if walking {
				r.bindings.Sync(r.input, r.keyHeld)
			}
			return
		}
	}
	r.bindings.Apply(r.input, key, action)
}

func (r *Renderer) keyHeld(key glfw.Key) bool {
	return r.window.GetKeyState(key) == glfw.Press
}

func (r *Renderer) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if r.window.IsMouseCaptured() {
		r.camera.HandleMouseMovement(xpos, ypos)
	}
}

func (r *Renderer) scrollCallback(_ *glfw.Window, _, yoffset float64) {
	r.camera.HandleMouseScroll(yoffset)
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	r.window.OnResize(width, height)
	r.camera.SetAspect(width, height)
}

func (r *Renderer) focusCallback(_ *glfw.Window, focused bool) {
	if !focused {
		r.input.Reset()
	}
}
