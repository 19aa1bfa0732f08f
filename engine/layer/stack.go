package layer

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-gl/engine/events"
)

// Stack is an ordered list of layers split by an insertion boundary: regular layers occupy the
// front, overlays the back. Overlays therefore update last and see events first.
// A Stack is owned by the main thread and is not safe for concurrent use.
type Stack struct {
	layers []Layer
	insert int
}

// NewStack creates an empty Stack.
func NewStack() *Stack {
	return &Stack{}
}

// PushLayer inserts a layer at the overlay boundary and attaches it.
//
// Parameters:
//   - l: the layer to push
func (s *Stack) PushLayer(l Layer) {
	s.layers = slices.Insert(s.layers, s.insert, l)
	s.insert++
	l.OnAttach()
}

// PushOverlay appends a layer after every other layer and attaches it.
//
// Parameters:
//   - l: the overlay to push
func (s *Stack) PushOverlay(l Layer) {
	s.layers = append(s.layers, l)
	l.OnAttach()
}

// PopLayer removes a regular layer and detaches it. Layers not in the regular range are ignored.
//
// Parameters:
//   - l: the layer to remove
//
// Returns:
//   - bool: true if the layer was removed
func (s *Stack) PopLayer(l Layer) bool {
	i := slices.Index(s.layers[:s.insert], l)
	if i < 0 {
		return false
	}
	s.layers = slices.Delete(s.layers, i, i+1)
	s.insert--
	l.OnDetach()
	return true
}

// PopOverlay removes an overlay and detaches it. Layers not in the overlay range are ignored.
//
// Parameters:
//   - l: the overlay to remove
//
// Returns:
//   - bool: true if the overlay was removed
func (s *Stack) PopOverlay(l Layer) bool {
	i := slices.Index(s.layers[s.insert:], l)
	if i < 0 {
		return false
	}
	i += s.insert
	s.layers = slices.Delete(s.layers, i, i+1)
	l.OnDetach()
	return true
}

// Layers returns a copy of the stack in update order.
func (s *Stack) Layers() []Layer {
	return slices.Clone(s.layers)
}

// Len returns the number of layers and overlays.
func (s *Stack) Len() int {
	return len(s.layers)
}

// OnUpdate updates every layer front-to-back.
//
// Parameters:
//   - ts: the frame timestep in seconds
func (s *Stack) OnUpdate(ts float32) {
	for _, l := range s.layers {
		l.OnUpdate(ts)
	}
}

// OnImGuiRender calls OnImGuiRender on every layer front-to-back.
func (s *Stack) OnImGuiRender() {
	for _, l := range s.layers {
		l.OnImGuiRender()
	}
}

// OnEvent offers the event to layers back-to-front, stopping at the first layer that handles it.
//
// Parameters:
//   - e: the event
func (s *Stack) OnEvent(e *events.Event) {
	for i := len(s.layers) - 1; i >= 0 && !e.Handled; i-- {
		s.layers[i].OnEvent(e)
	}
}

// Clear detaches every layer back-to-front and empties the stack.
func (s *Stack) Clear() {
	for i := len(s.layers) - 1; i >= 0; i-- {
		s.layers[i].OnDetach()
	}
	s.layers = nil
	s.insert = 0
}
