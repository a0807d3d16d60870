package protocol

// Button represents a logical button on the device
type Button int

const (
	PovUp Button = iota
	PovDown
	PovLeft
	PovRight
	BumperL
	BumperR
	MenuL
	MenuR
	ActionA
	ActionB
	numButtons
)

var ButtonNames = map[Button]string{
	PovUp:    "PovUp",
	PovDown:  "PovDown",
	PovLeft:  "PovLeft",
	PovRight: "PovRight",
	BumperL:  "BumperL",
	BumperR:  "BumperR",
	MenuL:    "MenuL",
	MenuR:    "MenuR",
	ActionA:  "ActionA",
	ActionB:  "ActionB",
}

var NameToButton = map[string]Button{
	"PovUp":    PovUp,
	"PovDown":  PovDown,
	"PovLeft":  PovLeft,
	"PovRight": PovRight,
	"BumperL":  BumperL,
	"BumperR":  BumperR,
	"MenuL":    MenuL,
	"MenuR":    MenuR,
	"ActionA":  ActionA,
	"ActionB":  ActionB,
}

func (b Button) String() string {
	if name, ok := ButtonNames[b]; ok {
		return name
	}
	return "Unknown"
}

// AllButtons lists every logical button in declaration order
func AllButtons() []Button {
	buttons := make([]Button, 0, numButtons)
	for b := Button(0); b < numButtons; b++ {
		buttons = append(buttons, b)
	}
	return buttons
}

// Input is a per-tick snapshot of the device's buttons.
// JustPressed and JustReleased hold for exactly one tick per transition.
type Input interface {
	Pressed(b Button) bool
	JustPressed(b Button) bool
	JustReleased(b Button) bool
}
