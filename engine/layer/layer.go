// Package layer defines the unit of application behaviour driven by the frame loop and the ordered
// stack the loop updates and dispatches events through.
package layer

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/events"
)

// Layer is a participant in the frame loop. Layers receive OnUpdate front-to-back each frame,
// OnImGuiRender between the overlay's Begin and End brackets, and events back-to-front until one
// marks the event handled.
type Layer interface {
	// Name returns the debug name of the layer.
	//
	// Returns:
	//   - string: the layer name
	Name() string

	// OnAttach is called once when the layer is pushed onto a stack.
	OnAttach()

	// OnDetach is called once when the layer is popped or the stack is cleared.
	OnDetach()

	// OnUpdate advances the layer by one frame.
	//
	// Parameters:
	//   - ts: the elapsed time since the previous frame in seconds
	OnUpdate(ts float32)

	// OnEvent receives an event. Set e.Handled to stop propagation to layers below.
	//
	// Parameters:
	//   - e: the event
	OnEvent(e *events.Event)

	// OnImGuiRender submits debug UI for the frame.
	OnImGuiRender()
}

// Base provides no-op implementations of every Layer method except Name.
// Embed it and override the callbacks a layer needs.
type Base struct {
	DebugName string
}

// NewBase creates a Base with the given debug name.
func NewBase(name string) Base {
	return Base{DebugName: name}
}

func (b Base) Name() string {
	return common.Coalesce(b.DebugName, "Layer")
}

func (Base) OnAttach() {}

func (Base) OnDetach() {}

func (Base) OnUpdate(float32) {}

func (Base) OnEvent(*events.Event) {}

func (Base) OnImGuiRender() {}

var _ Layer = Base{}
