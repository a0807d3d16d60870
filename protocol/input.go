package protocol

type buttonState struct {
	pressed  bool
	previous bool
	// tapped records a press that may already have been released
	// before the next tick saw it
	tapped bool
}

// Buttons turns raw press/release events into per-tick Input snapshots.
// Events arrive through Set; Latch closes the current tick.
type Buttons struct {
	states [numButtons]buttonState
}

// NewButtons constructs a Buttons with nothing held
func NewButtons() *Buttons {
	return &Buttons{}
}

// Set records a raw event for a button
func (bs *Buttons) Set(b Button, down bool) {
	if b < 0 || b >= numButtons {
		return
	}
	s := &bs.states[b]
	if down && !s.pressed {
		s.tapped = true
	}
	s.pressed = down
}

// Latch ends the tick: this tick's state becomes the previous state
func (bs *Buttons) Latch() {
	for i := range bs.states {
		s := &bs.states[i]
		s.previous = s.pressed
		s.tapped = false
	}
}

func (bs *Buttons) Pressed(b Button) bool {
	if b < 0 || b >= numButtons {
		return false
	}
	return bs.states[b].pressed
}

func (bs *Buttons) JustPressed(b Button) bool {
	if b < 0 || b >= numButtons {
		return false
	}
	s := bs.states[b]
	return !s.previous && (s.pressed || s.tapped)
}

func (bs *Buttons) JustReleased(b Button) bool {
	if b < 0 || b >= numButtons {
		return false
	}
	s := bs.states[b]
	return !s.pressed && s.previous
}
