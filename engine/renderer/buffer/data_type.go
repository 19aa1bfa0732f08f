// Package buffer holds the vertex-input side of the renderer: typed vertex layouts, vertex and
// index buffers, and the vertex array that binds them together for a draw.
package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// ShaderDataType is the shader-side type of one vertex attribute.
type ShaderDataType int

const (
	None ShaderDataType = iota
	Float
	Float2
	Float3
	Float4
	Mat3
	Mat4
	Int
	Int2
	Int3
	Int4
	Bool
)

func (t ShaderDataType) String() string {
	switch t {
	case None:
		return "none"
	case Float:
		return "float"
	case Float2:
		return "float2"
	case Float3:
		return "float3"
	case Float4:
		return "float4"
	case Mat3:
		return "mat3"
	case Mat4:
		return "mat4"
	case Int:
		return "int"
	case Int2:
		return "int2"
	case Int3:
		return "int3"
	case Int4:
		return "int4"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("ShaderDataType(%d)", int(t))
	}
}

// Size returns the size in bytes of one value of the type. Floats and ints are 4 bytes per
// component, bools 1 byte. Panics on None or an unknown type, which is a configuration error.
//
// Returns:
//   - uint32: size in bytes
func (t ShaderDataType) Size() uint32 {
	switch t {
	case Float, Int:
		return 4
	case Float2, Int2:
		return 4 * 2
	case Float3, Int3:
		return 4 * 3
	case Float4, Int4:
		return 4 * 4
	case Mat3:
		return 4 * 3 * 3
	case Mat4:
		return 4 * 4 * 4
	case Bool:
		return 1
	}
	panic(fmt.Sprintf("unknown shader data type: %s", t))
}

// ComponentCount returns the number of scalar components of the type (9 for Mat3, 16 for Mat4).
// Panics on None or an unknown type.
//
// Returns:
//   - int32: component count
func (t ShaderDataType) ComponentCount() int32 {
	switch t {
	case Float, Int, Bool:
		return 1
	case Float2, Int2:
		return 2
	case Float3, Int3:
		return 3
	case Float4, Int4:
		return 4
	case Mat3:
		return 3 * 3
	case Mat4:
		return 4 * 4
	}
	panic(fmt.Sprintf("unknown shader data type: %s", t))
}

// attribType maps the data type onto the component type used for the vertex attribute pointer.
func (t ShaderDataType) attribType() gpu.AttribType {
	switch t {
	case Int, Int2, Int3, Int4:
		return gpu.AttribInt
	case Bool:
		return gpu.AttribBool
	default:
		return gpu.AttribFloat
	}
}

// columns returns the number of attribute slots the type occupies and the components per slot.
// Matrices are fed to the vertex stage one column per slot.
func (t ShaderDataType) columns() (slots int, components int32) {
	switch t {
	case Mat3:
		return 3, 3
	case Mat4:
		return 4, 4
	default:
		return 1, t.ComponentCount()
	}
}
