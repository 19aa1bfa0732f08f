package buffer

// Element describes one named attribute inside an interleaved vertex.
type Element struct {
	// Name is the attribute name, used for diagnostics only.
	Name string
	// Type is the shader-side data type.
	Type ShaderDataType
	// Size is the byte size of the attribute, derived from Type.
	Size uint32
	// Offset is the byte offset of the attribute inside a vertex, set by the owning Layout.
	Offset uint32
	// Normalized requests normalization of integer data read as float.
	Normalized bool
}

// NewElement creates an element of the given type. The offset is assigned when the element is
// placed in a Layout. Panics on an unknown type.
//
// Parameters:
//   - t: the shader data type
//   - name: the attribute name
//   - normalized: optional normalization flag, false when omitted
//
// Returns:
//   - Element: the element with its Size filled in
func NewElement(t ShaderDataType, name string, normalized ...bool) Element {
	e := Element{
		Name: name,
		Type: t,
		Size: t.Size(),
	}
	if len(normalized) > 0 {
		e.Normalized = normalized[0]
	}
	return e
}

// Layout is an ordered list of elements describing one interleaved vertex. Offsets and the stride
// are recomputed every time the elements are set, so they always agree with the element order.
type Layout struct {
	elements []Element
	stride   uint32
}

// NewLayout creates a layout from elements in the given order.
//
// Parameters:
//   - elements: the attributes of one vertex, in memory order
//
// Returns:
//   - Layout: the layout with offsets and stride computed
func NewLayout(elements ...Element) Layout {
	var l Layout
	l.SetElements(elements...)
	return l
}

// SetElements replaces the elements and recomputes offsets and stride.
//
// Parameters:
//   - elements: the attributes of one vertex, in memory order
func (l *Layout) SetElements(elements ...Element) {
	l.elements = append([]Element(nil), elements...)
	l.computeLayout()
}

// Elements returns a copy of the elements in declaration order.
//
// Returns:
//   - []Element: the elements
func (l Layout) Elements() []Element {
	return append([]Element(nil), l.elements...)
}

// Stride returns the byte size of one vertex.
//
// Returns:
//   - uint32: the stride
func (l Layout) Stride() uint32 {
	return l.stride
}

// Len returns the number of elements.
//
// Returns:
//   - int: the element count
func (l Layout) Len() int {
	return len(l.elements)
}

func (l *Layout) computeLayout() {
	var offset uint32
	for i := range l.elements {
		l.elements[i].Size = l.elements[i].Type.Size()
		l.elements[i].Offset = offset
		offset += l.elements[i].Size
	}
	l.stride = offset
}
