package main

import (
	"image/color"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/minaorangina/taboo/config"
	"github.com/minaorangina/taboo/engine"
	"github.com/minaorangina/taboo/protocol"
)

var keymap = map[ebiten.Key]protocol.Button{
	ebiten.KeyW:       protocol.PovUp,
	ebiten.KeyS:       protocol.PovDown,
	ebiten.KeyA:       protocol.PovLeft,
	ebiten.KeyD:       protocol.PovRight,
	ebiten.KeySpace:   protocol.BumperL,
	ebiten.KeyNumpad0: protocol.BumperR,
	ebiten.KeyComma:   protocol.MenuL,
	ebiten.KeyPeriod:  protocol.MenuR,
	ebiten.KeyNumpad2: protocol.ActionB,
	ebiten.KeyNumpad6: protocol.ActionA,
	ebiten.KeyZ:       protocol.ActionB,
	ebiten.KeyX:       protocol.ActionA,
}

// Sim runs one device in a desktop window
type Sim struct {
	device *engine.Device
	frame  *protocol.Frame
}

func (s *Sim) Update() error {
	down := map[protocol.Button]bool{}
	for key, b := range keymap {
		if ebiten.IsKeyPressed(key) {
			down[b] = true
		}
	}
	for _, b := range protocol.AllButtons() {
		s.device.Press(b, down[b])
	}

	s.frame = s.device.StepAt(time.Now())

	return nil
}

func (s *Sim) Draw(screen *ebiten.Image) {
	if s.frame == nil {
		return
	}
	s.frame.Replay(&imageSurface{screen})
}

func (s *Sim) Layout(outsideWidth, outsideHeight int) (int, int) {
	return engine.ScreenWidth, engine.ScreenHeight
}

// imageSurface draws onto an ebiten image. Text size is ignored: the debug
// font has one size.
type imageSurface struct {
	img *ebiten.Image
}

func (s *imageSurface) Width() int {
	return s.img.Bounds().Dx()
}

func (s *imageSurface) Height() int {
	return s.img.Bounds().Dy()
}

func (s *imageSurface) FillRect(x, y, w, h int, c protocol.Color) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), rgba(c), false)
}

func (s *imageSurface) Text(x, y int, size float64, c protocol.Color, text string) {
	// the debug font only prints white; mark coloured text with a swatch
	if c != protocol.White {
		vector.DrawFilledRect(s.img, float32(x-6), float32(y+4), 3, 8, rgba(c), false)
	}
	ebitenutil.DebugPrintAt(s.img, text, x, y)
}

func rgba(c protocol.Color) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func main() {
	logger := log.New(os.Stderr, "taboo ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err)
	}

	pool, err := cfg.Pool(logger)
	if err != nil {
		logger.Fatal(err)
	}

	shell := engine.NewShell(engine.ShellOpts{
		Pool:       pool,
		NewRand:    cfg.Rand,
		TurnLength: cfg.TurnLength,
		Logger:     logger,
	})

	sim := &Sim{device: engine.NewDevice(engine.NewID(), shell)}

	ebiten.SetWindowSize(engine.ScreenWidth, engine.ScreenHeight)
	ebiten.SetWindowTitle("Taboo")
	if err := ebiten.RunGame(sim); err != nil {
		logger.Fatal(err)
	}
}
