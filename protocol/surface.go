package protocol

// Color is an RGB colour
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
)

// Surface accepts draw calls. It owns the pixels; the engine only issues calls.
type Surface interface {
	Width() int
	Height() int
	FillRect(x, y, w, h int, c Color)
	Text(x, y int, size float64, c Color, s string)
}

// DrawKind distinguishes draw calls
type DrawKind string

const (
	DrawRect DrawKind = "rect"
	DrawText DrawKind = "text"
)

// DrawCall is one recorded call on a Frame
type DrawCall struct {
	Kind  DrawKind `json:"kind"`
	X     int      `json:"x"`
	Y     int      `json:"y"`
	W     int      `json:"w,omitempty"`
	H     int      `json:"h,omitempty"`
	Size  float64  `json:"size,omitempty"`
	Color Color    `json:"color"`
	Text  string   `json:"text,omitempty"`
}

// Frame is a Surface that records draw calls in order
type Frame struct {
	W     int        `json:"width"`
	H     int        `json:"height"`
	Calls []DrawCall `json:"calls"`
}

// NewFrame constructs an empty Frame of the given size
func NewFrame(width, height int) *Frame {
	return &Frame{W: width, H: height, Calls: []DrawCall{}}
}

func (f *Frame) Width() int {
	return f.W
}

func (f *Frame) Height() int {
	return f.H
}

func (f *Frame) FillRect(x, y, w, h int, c Color) {
	f.Calls = append(f.Calls, DrawCall{Kind: DrawRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (f *Frame) Text(x, y int, size float64, c Color, s string) {
	f.Calls = append(f.Calls, DrawCall{Kind: DrawText, X: x, Y: y, Size: size, Color: c, Text: s})
}

// Texts returns the strings drawn on the frame, in order
func (f *Frame) Texts() []string {
	texts := []string{}
	for _, c := range f.Calls {
		if c.Kind == DrawText {
			texts = append(texts, c.Text)
		}
	}
	return texts
}

// Replay issues every recorded call on another Surface
func (f *Frame) Replay(s Surface) {
	for _, c := range f.Calls {
		switch c.Kind {
		case DrawRect:
			s.FillRect(c.X, c.Y, c.W, c.H, c.Color)
		case DrawText:
			s.Text(c.X, c.Y, c.Size, c.Color, c.Text)
		}
	}
}
