package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-gl/common"
)

func TestDispatchMatchesKind(t *testing.T) {
	e := NewWindowResize(800, 600)

	called := Dispatch(e, WindowClose, func(*Event) bool { return true })
	assert.False(t, called)
	assert.False(t, e.Handled)

	var got *Event
	called = Dispatch(e, WindowResize, func(ev *Event) bool {
		got = ev
		return false
	})
	assert.True(t, called)
	assert.Same(t, e, got)
	assert.False(t, e.Handled)

	Dispatch(e, WindowResize, func(*Event) bool { return true })
	assert.True(t, e.Handled)

	Dispatch(e, WindowResize, func(*Event) bool { return false })
	assert.True(t, e.Handled, "handled is never cleared by a later handler")
}

func TestCategories(t *testing.T) {
	assert.True(t, NewWindowClose().InCategory(CategoryApplication))
	assert.False(t, NewWindowClose().InCategory(CategoryInput))

	key := NewKeyPressed(common.KeyA, true)
	assert.True(t, key.InCategory(CategoryKeyboard))
	assert.True(t, key.InCategory(CategoryInput))
	assert.False(t, key.InCategory(CategoryMouse))

	button := NewMouseButton(common.MouseButtonLeft, true)
	assert.Equal(t, MouseButtonPressed, button.Kind)
	assert.True(t, button.InCategory(CategoryMouseButton|CategoryKeyboard))

	assert.False(t, NewMouseScrolled(0, 1).InCategory(CategoryMouseButton))
	assert.Equal(t, WindowLostFocus, NewWindowFocus(false).Kind)
	assert.Equal(t, MouseButtonReleased, NewMouseButton(common.MouseButtonRight, false).Kind)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "WindowResize: 1280, 720", NewWindowResize(1280, 720).String())
	assert.Equal(t, "KeyPressed: 65 (repeat=false)", NewKeyPressed(common.KeyA, false).String())
	assert.Equal(t, "KeyTyped: 'x'", NewKeyTyped('x').String())
	assert.Equal(t, "MouseScrolled: 0, -1.5", NewMouseScrolled(0, -1.5).String())
	assert.Equal(t, "WindowClose", NewWindowClose().String())
}
