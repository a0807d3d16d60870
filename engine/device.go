package engine

import (
	"sync"
	"time"

	"github.com/minaorangina/taboo/protocol"
	uuid "github.com/satori/go.uuid"
)

const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

// NewID constructs a device ID
func NewID() string {
	return uuid.NewV4().String()
}

// Device is one simulated handheld: a shell, its buttons and its screen.
// Press may be called from any goroutine. lastStep is the wall time of the
// last StepAt, zero before the first.
type Device struct {
	id       string
	shell    *Shell
	buttons  *protocol.Buttons
	lastStep time.Time
	mu       sync.Mutex
}

// NewDevice constructs a Device around a shell
func NewDevice(id string, shell *Shell) *Device {
	return &Device{
		id:      id,
		shell:   shell,
		buttons: protocol.NewButtons(),
	}
}

func (d *Device) ID() string {
	return d.id
}

// Press records a raw button event, seen by the next Step
func (d *Device) Press(b protocol.Button, down bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buttons.Set(b, down)
}

// Step runs one tick elapsed after the previous one and returns the frame it drew
func (d *Device) Step(elapsed time.Duration) *protocol.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.step(elapsed)
}

// StepAt runs one tick at wall time now. The device clock only moves by the
// time since the last StepAt, however many callers are stepping it.
func (d *Device) StepAt(now time.Time) *protocol.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()

	var elapsed time.Duration
	if !d.lastStep.IsZero() {
		elapsed = now.Sub(d.lastStep)
	}
	if d.lastStep.IsZero() || now.After(d.lastStep) {
		d.lastStep = now
	}

	return d.step(elapsed)
}

func (d *Device) step(elapsed time.Duration) *protocol.Frame {
	frame := protocol.NewFrame(ScreenWidth, ScreenHeight)
	d.shell.Tick(d.buttons, elapsed, frame)
	d.buttons.Latch()

	return frame
}

// Summary describes what the device is showing
func (d *Device) Summary() protocol.DeviceSummary {
	d.mu.Lock()
	defer d.mu.Unlock()

	parties, mode := d.shell.Settings()
	summary := protocol.DeviceSummary{
		DeviceID: d.id,
		Screen:   "menu",
		Parties:  parties,
		Mode:     mode.String(),
	}

	if session, ok := d.shell.Session(); ok {
		summary.Screen = session.State().String()
		summary.DeckSize = session.Deck().Size()
		summary.Scores = session.Scores()
	}

	return summary
}
