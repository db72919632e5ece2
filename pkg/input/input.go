package input

import "strings"

// Direction is a logical movement direction.
type Direction int

const (
	Forward Direction = iota
	Left
	Right
	numDirections
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Key names a physical key the way browsers report KeyboardEvent.key
// ("w", "ArrowUp", ...).
type Key string

// Bindings maps keys to directions. Several keys may share a direction.
type Bindings map[Key]Direction

// DefaultBindings binds WASD-style letters and the arrow keys.
func DefaultBindings() Bindings {
	return Bindings{
		"w":          Forward,
		"ArrowUp":    Forward,
		"a":          Left,
		"ArrowLeft":  Left,
		"d":          Right,
		"ArrowRight": Right,
	}
}

// State tracks which directions are held. A direction stays active while any
// of its bound keys is held, so releasing one alias does not cancel another.
type State struct {
	bindings Bindings
	held     map[Key]bool
	count    [numDirections]int
}

// NewState returns an empty state. Nil bindings mean DefaultBindings.
func NewState(bindings Bindings) *State {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &State{
		bindings: bindings,
		held:     make(map[Key]bool),
	}
}

func normalize(k Key) Key {
	if len(k) == 1 {
		return Key(strings.ToLower(string(k)))
	}
	return k
}

// KeyDown records a key press. Repeats of a held key are ignored.
func (s *State) KeyDown(k Key) {
	k = normalize(k)
	d, ok := s.bindings[k]
	if !ok || s.held[k] {
		return
	}
	s.held[k] = true
	s.count[d]++
}

// KeyUp records a key release. Releasing a key that is not held is a no-op.
func (s *State) KeyUp(k Key) {
	k = normalize(k)
	d, ok := s.bindings[k]
	if !ok || !s.held[k] {
		return
	}
	delete(s.held, k)
	s.count[d]--
}

// Active reports whether direction d is held.
func (s *State) Active(d Direction) bool {
	if d < 0 || d >= numDirections {
		return false
	}
	return s.count[d] > 0
}

func (s *State) Forward() bool { return s.Active(Forward) }
func (s *State) Left() bool    { return s.Active(Left) }
func (s *State) Right() bool   { return s.Active(Right) }

// Reset releases every key.
func (s *State) Reset() {
	for k := range s.held {
		delete(s.held, k)
	}
	s.count = [numDirections]int{}
}

// Edges are the key changes seen during one tick, named the way Key is.
type Edges struct {
	Pressed  []Key
	Released []Key
}

// Apply records a tick's presses, then its releases, so a key tapped within
// one tick ends up released.
func (s *State) Apply(e Edges) {
	for _, k := range e.Pressed {
		s.KeyDown(k)
	}
	for _, k := range e.Released {
		s.KeyUp(k)
	}
}
