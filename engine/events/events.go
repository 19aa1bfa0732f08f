// Package events defines the closed set of window and input events delivered to the application
// and its layers, and the Dispatch helper used to route them to typed handlers.
package events

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
)

// Kind tags the variant of an Event.
type Kind int

const (
	KindNone Kind = iota
	WindowClose
	WindowResize
	WindowFocus
	WindowLostFocus
	KeyPressed
	KeyReleased
	KeyTyped
	MouseButtonPressed
	MouseButtonReleased
	MouseMoved
	MouseScrolled
)

func (k Kind) String() string {
	switch k {
	case WindowClose:
		return "WindowClose"
	case WindowResize:
		return "WindowResize"
	case WindowFocus:
		return "WindowFocus"
	case WindowLostFocus:
		return "WindowLostFocus"
	case KeyPressed:
		return "KeyPressed"
	case KeyReleased:
		return "KeyReleased"
	case KeyTyped:
		return "KeyTyped"
	case MouseButtonPressed:
		return "MouseButtonPressed"
	case MouseButtonReleased:
		return "MouseButtonReleased"
	case MouseMoved:
		return "MouseMoved"
	case MouseScrolled:
		return "MouseScrolled"
	default:
		return "None"
	}
}

// Category is a bit set grouping event kinds.
type Category uint8

const (
	CategoryApplication Category = 1 << iota
	CategoryInput
	CategoryKeyboard
	CategoryMouse
	CategoryMouseButton
)

// Categories returns the category bits of the kind.
//
// Returns:
//   - Category: the categories the kind belongs to
func (k Kind) Categories() Category {
	switch k {
	case WindowClose, WindowResize, WindowFocus, WindowLostFocus:
		return CategoryApplication
	case KeyPressed, KeyReleased, KeyTyped:
		return CategoryKeyboard | CategoryInput
	case MouseButtonPressed, MouseButtonReleased:
		return CategoryMouse | CategoryMouseButton | CategoryInput
	case MouseMoved, MouseScrolled:
		return CategoryMouse | CategoryInput
	default:
		return 0
	}
}

// Event is one window or input event. Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind

	// Handled is set once a handler consumed the event; dispatch to further layers stops.
	Handled bool

	// Width and Height are the new framebuffer size of a WindowResize.
	Width, Height uint32

	// Key is the key of a KeyPressed or KeyReleased event.
	Key common.Key
	// Repeat marks a KeyPressed generated by key repeat.
	Repeat bool
	// Char is the character of a KeyTyped event.
	Char rune

	// Button is the button of a mouse button event.
	Button common.MouseButton

	// X and Y hold the cursor position of a MouseMoved event or the offsets of a MouseScrolled event.
	X, Y float32
}

// InCategory reports whether the event belongs to any of the given categories.
//
// Parameters:
//   - c: one or more category bits
//
// Returns:
//   - bool: true if the event kind has any of the bits
func (e *Event) InCategory(c Category) bool {
	return e.Kind.Categories()&c != 0
}

func (e *Event) String() string {
	switch e.Kind {
	case WindowResize:
		return fmt.Sprintf("WindowResize: %d, %d", e.Width, e.Height)
	case KeyPressed:
		return fmt.Sprintf("KeyPressed: %d (repeat=%t)", e.Key, e.Repeat)
	case KeyReleased:
		return fmt.Sprintf("KeyReleased: %d", e.Key)
	case KeyTyped:
		return fmt.Sprintf("KeyTyped: %q", e.Char)
	case MouseButtonPressed, MouseButtonReleased:
		return fmt.Sprintf("%s: %d", e.Kind, e.Button)
	case MouseMoved, MouseScrolled:
		return fmt.Sprintf("%s: %g, %g", e.Kind, e.X, e.Y)
	default:
		return e.Kind.String()
	}
}

// Dispatch calls handler if the event is of the given kind and ORs its result into Handled.
//
// Parameters:
//   - e: the event
//   - kind: the kind handler accepts
//   - handler: returns true if it consumed the event
//
// Returns:
//   - bool: true if the handler was called
func Dispatch(e *Event, kind Kind, handler func(*Event) bool) bool {
	if e.Kind != kind {
		return false
	}
	e.Handled = handler(e) || e.Handled
	return true
}

// NewWindowClose creates a WindowClose event.
func NewWindowClose() *Event {
	return &Event{Kind: WindowClose}
}

// NewWindowResize creates a WindowResize event.
func NewWindowResize(width, height uint32) *Event {
	return &Event{Kind: WindowResize, Width: width, Height: height}
}

// NewWindowFocus creates a WindowFocus or WindowLostFocus event.
func NewWindowFocus(focused bool) *Event {
	if focused {
		return &Event{Kind: WindowFocus}
	}
	return &Event{Kind: WindowLostFocus}
}

// NewKeyPressed creates a KeyPressed event.
func NewKeyPressed(key common.Key, repeat bool) *Event {
	return &Event{Kind: KeyPressed, Key: key, Repeat: repeat}
}

// NewKeyReleased creates a KeyReleased event.
func NewKeyReleased(key common.Key) *Event {
	return &Event{Kind: KeyReleased, Key: key}
}

// NewKeyTyped creates a KeyTyped event.
func NewKeyTyped(char rune) *Event {
	return &Event{Kind: KeyTyped, Char: char}
}

// NewMouseButton creates a MouseButtonPressed or MouseButtonReleased event.
func NewMouseButton(button common.MouseButton, pressed bool) *Event {
	if pressed {
		return &Event{Kind: MouseButtonPressed, Button: button}
	}
	return &Event{Kind: MouseButtonReleased, Button: button}
}

// NewMouseMoved creates a MouseMoved event.
func NewMouseMoved(x, y float32) *Event {
	return &Event{Kind: MouseMoved, X: x, Y: y}
}

// NewMouseScrolled creates a MouseScrolled event.
func NewMouseScrolled(xOffset, yOffset float32) *Event {
	return &Event{Kind: MouseScrolled, X: xOffset, Y: yOffset}
}
