package meistercharts

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// WhitePixel is a 1x1 white image used to fill rectangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// RunConfig configures Run. Zero values fall back to defaults.
type RunConfig struct {
	Config

	Title  string
	Width  int // logical window width, default 640
	Height int // logical window height, default 480
	// TPS sets ebiten's update rate; 0 keeps ebiten's default of 60.
	TPS int
	// ShowFPS adds an FPSLayer on top of the stack.
	ShowFPS bool
	// Background, when non-transparent, adds a FillLayer at the bottom of
	// the stack.
	Background Color
	// ScreenshotDir is where screenshots are written, default "screenshots".
	ScreenshotDir string
}

func (c *RunConfig) applyDefaults() {
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Title == "" {
		c.Title = "meistercharts"
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	if c.TransformStackCapacity == 0 {
		c.TransformStackCapacity = DefaultTransformStackCapacity
	}
}

// Run opens a window and drives a Chart with ebiten's game loop. setup is
// called once with the new chart to add layers. Run blocks until the window
// is closed.
func Run(cfg RunConfig, setup func(c *Chart)) error {
	cfg.applyDefaults()

	surface := NewEbitenSurface(cfg.Width, cfg.Height)
	surface.ScreenshotDir = cfg.ScreenshotDir
	chart := NewChart(surface, cfg.Config)
	if cfg.Background.A > 0 {
		chart.AddLayer(&FillLayer{Color: cfg.Background})
	}
	if setup != nil {
		setup(chart)
	}
	if cfg.ShowFPS {
		chart.AddLayer(NewFPSLayer(chart))
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	g := &game{chart: chart, surface: surface, start: time.Now()}
	defer chart.Dispose()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run chart: %w", err)
	}
	return nil
}

// game adapts a Chart to ebiten.Game. Update feeds input, Draw is the tick
// source.
type game struct {
	chart   *Chart
	surface *EbitenSurface
	input   ebitenInput
	start   time.Time
}

func (g *game) now() float64 {
	return float64(time.Since(g.start).Microseconds()) / 1000
}

func (g *game) Update() error {
	g.chart.ProcessInput(g.input.poll(g.surface, g.now()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.screen = screen
	now := g.now()
	g.chart.Tick(float64(time.Now().UnixMicro())/1000, now)
	g.surface.flushScreenshots()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.surface.layout(outsideWidth, outsideHeight)
}

// EbitenSurface is a Surface backed by the ebiten screen. It fills
// rectangles, shows a placeholder while painting is disabled and captures
// screenshots.
type EbitenSurface struct {
	screen *ebiten.Image
	size   Size
	ratio  float64

	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewEbitenSurface creates a surface with an initial logical size. The
// size and device pixel ratio follow the window once ebiten calls Layout.
func NewEbitenSurface(width, height int) *EbitenSurface {
	return &EbitenSurface{
		size:          Size{Width: float64(width), Height: float64(height)},
		ratio:         1,
		ScreenshotDir: "screenshots",
	}
}

// Size returns the window size in logical pixels.
func (s *EbitenSurface) Size() Size { return s.size }

// DevicePixelRatio returns the monitor's device scale factor.
func (s *EbitenSurface) DevicePixelRatio() float64 { return s.ratio }

// Image returns the screen of the current frame, or nil outside Draw.
func (s *EbitenSurface) Image() *ebiten.Image { return s.screen }

// ApplyFrameDefaults is a no-op: ebiten carries no canvas state that a
// resize could reset.
func (s *EbitenSurface) ApplyFrameDefaults() {}

// layout records the logical size and returns the screen size in device
// pixels.
func (s *EbitenSurface) layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := 1.0
	if m := ebiten.Monitor(); m != nil {
		ratio = validRatio(m.DeviceScaleFactor())
	}
	s.ratio = ratio
	s.size = Size{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return PhysicalSize(s.size, ratio)
}

// FillRect fills r transformed by m.
func (s *EbitenSurface) FillRect(m AffineMatrix, r Rect, c Color) {
	if s.screen == nil || r.Width <= 0 || r.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.GeoM.Concat(m.GeoM())
	op.ColorScale.ScaleWithColor(c.toRGBA())
	s.screen.DrawImage(WhitePixel, &op)
}

// PaintDisabled covers the screen with a grey placeholder.
func (s *EbitenSurface) PaintDisabled() {
	if s.screen == nil {
		return
	}
	b := s.screen.Bounds()
	vector.DrawFilledRect(s.screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.RGBA{0x40, 0x40, 0x40, 0xff}, false)
	ebitenutil.DebugPrintAt(s.screen, "painting disabled", 8, 8)
}

// Screenshot queues a labeled screenshot taken after the current frame is
// painted.
func (s *EbitenSurface) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// ebitenInput polls ebiten's input state into InputFrames.
type ebitenInput struct {
	touchIDs []ebiten.TouchID
	keys     []ebiten.Key
	chars    []rune
	touches  []Touch
	pressed  []string
	released []string
}

func (in *ebitenInput) poll(s *EbitenSurface, ts float64) InputFrame {
	ratio := validRatio(s.ratio)
	size := s.size

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx)/ratio, float64(my)/ratio
	f := InputFrame{
		Timestamp:    ts,
		Unfocused:    !ebiten.IsFocused(),
		CursorX:      x,
		CursorY:      y,
		CursorInside: x >= 0 && y >= 0 && x < size.Width && y < size.Height,
		Modifiers:    readModifiers(),
	}
	f.Buttons[MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	f.Buttons[MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	f.Buttons[MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	f.WheelX, f.WheelY = ebiten.Wheel()

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	in.touches = in.touches[:0]
	for _, id := range in.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		in.touches = append(in.touches, Touch{ID: int(id), X: float64(tx) / ratio, Y: float64(ty) / ratio})
	}
	f.Touches = in.touches

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	in.pressed = appendKeyNames(in.pressed[:0], in.keys)
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	in.released = appendKeyNames(in.released[:0], in.keys)
	f.KeysPressed = in.pressed
	f.KeysReleased = in.released

	in.chars = ebiten.AppendInputChars(in.chars[:0])
	f.Chars = in.chars

	if traceEnabled() && (len(f.KeysPressed) > 0 || len(f.Touches) > 0) {
		trace("input polled",
			slog.Int("keys", len(f.KeysPressed)),
			slog.Int("touches", len(f.Touches)))
	}
	return f
}

func appendKeyNames(dst []string, keys []ebiten.Key) []string {
	for _, k := range keys {
		dst = append(dst, k.String())
	}
	return dst
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
