package input

// Key identifies a keyboard key the sprite loop cares about.
type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEscape:
		return "escape"
	default:
		return "other"
	}
}

// Phase is the edge of a key event.
type Phase int

const (
	Pressed Phase = iota
	Released
)

func (p Phase) String() string {
	if p == Pressed {
		return "pressed"
	}
	return "released"
}

// State holds the pressed flag of each directional key.
type State struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// flags maps each directional key to the field it drives. Keys absent from
// the table (escape, other) are handled elsewhere.
var flags = map[Key]func(*State) *bool{
	KeyLeft:  func(s *State) *bool { return &s.Left },
	KeyRight: func(s *State) *bool { return &s.Right },
	KeyUp:    func(s *State) *bool { return &s.Up },
	KeyDown:  func(s *State) *bool { return &s.Down },
}

// Handle records a key event. Pressed sets the key's flag, Released clears it,
// and non-directional keys are ignored.
func (s *State) Handle(key Key, phase Phase) {
	flag, ok := flags[key]
	if !ok {
		return
	}
	*flag(s) = phase == Pressed
}

// Directional reports whether key has a flag in State.
func Directional(key Key) bool {
	_, ok := flags[key]
	return ok
}
