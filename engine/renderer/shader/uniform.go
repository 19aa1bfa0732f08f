package shader

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// Address names a uniform inside a program: a plain name, a struct member ("block.member"), an
// array element ("name[i]") or a member of an array element ("list[i].member").
type Address struct {
	// Name is the uniform, struct or array name.
	Name string
	// Member is the struct member, empty for plain uniforms.
	Member string
	// Index is the array element, used only when Indexed is set.
	Index int
	// Indexed marks the address as an array element.
	Indexed bool
}

// Name addresses a plain uniform.
func Name(name string) Address {
	return Address{Name: name}
}

// Member addresses a member of a uniform struct, "block.member".
func Member(block, member string) Address {
	return Address{Name: block, Member: member}
}

// Element addresses a member of an element of a uniform struct array, "list[index].member".
func Element(list string, index int, member string) Address {
	return Address{Name: list, Member: member, Index: index, Indexed: true}
}

// At addresses an element of a uniform array, "name[index]".
func At(name string, index int) Address {
	return Address{Name: name, Index: index, Indexed: true}
}

// String returns the fully qualified GLSL uniform name.
func (a Address) String() string {
	if !a.Indexed && a.Member == "" {
		return a.Name
	}
	s := a.Name
	if a.Indexed {
		s += "[" + strconv.Itoa(a.Index) + "]"
	}
	if a.Member != "" {
		s += "." + a.Member
	}
	return s
}

// element returns the address of array element i, keeping the member.
func (a Address) element(i int) Address {
	a.Index = i
	a.Indexed = true
	return a
}

// Value is a non-matrix uniform value type.
type Value interface {
	bool | int32 | int | float32 | mgl32.Vec2 | mgl32.Vec3 | mgl32.Vec4
}

// Matrix is a matrix uniform value type.
type Matrix interface {
	mgl32.Mat3 | mgl32.Mat4
}

// Set uploads one value to the uniform at addr.
//
// Parameters:
//   - p: the program, bound before the upload
//   - addr: the uniform address
//   - v: the value
func Set[T Value](p Program, addr Address, v T) {
	p.Upload(addr, uniformOf(v))
}

// SetAt uploads one value to an already resolved location.
//
// Parameters:
//   - p: the program, bound before the upload
//   - location: the uniform location
//   - v: the value
func SetAt[T Value](p Program, location gpu.UniformLocation, v T) {
	p.UploadAt(location, uniformOf(v))
}

// SetArray uploads values[i] to element i of the array at addr ("name[i]" or "list[i].member").
//
// Parameters:
//   - p: the program, bound before the uploads
//   - addr: the array address, its index is ignored
//   - values: one value per element, starting at element 0
func SetArray[T Value](p Program, addr Address, values []T) {
	for i, v := range values {
		p.Upload(addr.element(i), uniformOf(v))
	}
}

// SetBroadcast uploads the same value to elements 0 through count-1 of the array at addr.
//
// Parameters:
//   - p: the program, bound before the uploads
//   - addr: the array address, its index is ignored
//   - v: the value
//   - count: the number of elements to write
func SetBroadcast[T Value](p Program, addr Address, v T, count int) {
	u := uniformOf(v)
	for i := 0; i < count; i++ {
		p.Upload(addr.element(i), u)
	}
}

// SetMatrix uploads one matrix to the uniform at addr. mgl32 matrices are column-major; transpose
// requests the driver to transpose on upload.
//
// Parameters:
//   - p: the program, bound before the upload
//   - addr: the uniform address
//   - m: the matrix
//   - transpose: upload the transposed matrix
func SetMatrix[T Matrix](p Program, addr Address, m T, transpose bool) {
	p.Upload(addr, matrixOf(m, transpose))
}

// SetMatrixAt uploads one matrix to an already resolved location.
//
// Parameters:
//   - p: the program, bound before the upload
//   - location: the uniform location
//   - m: the matrix
//   - transpose: upload the transposed matrix
func SetMatrixAt[T Matrix](p Program, location gpu.UniformLocation, m T, transpose bool) {
	p.UploadAt(location, matrixOf(m, transpose))
}

// SetMatrixArray uploads matrices[i] to element i of the array at addr.
//
// Parameters:
//   - p: the program, bound before the uploads
//   - addr: the array address, its index is ignored
//   - matrices: one matrix per element, starting at element 0
//   - transpose: upload the transposed matrices
func SetMatrixArray[T Matrix](p Program, addr Address, matrices []T, transpose bool) {
	for i, m := range matrices {
		p.Upload(addr.element(i), matrixOf(m, transpose))
	}
}

// SetMatrixBroadcast uploads the same matrix to elements 0 through count-1 of the array at addr.
//
// Parameters:
//   - p: the program, bound before the uploads
//   - addr: the array address, its index is ignored
//   - m: the matrix
//   - count: the number of elements to write
//   - transpose: upload the transposed matrix
func SetMatrixBroadcast[T Matrix](p Program, addr Address, m T, count int, transpose bool) {
	u := matrixOf(m, transpose)
	for i := 0; i < count; i++ {
		p.Upload(addr.element(i), u)
	}
}

// SetInts uploads a contiguous int array (e.g. sampler units) with a single upload at addr.
//
// Parameters:
//   - p: the program, bound before the upload
//   - addr: the address of the first element
//   - values: the values
func SetInts(p Program, addr Address, values []int32) {
	p.Upload(addr, gpu.Uniform{Type: gpu.UniformInt, Count: int32(len(values)), Ints: values})
}

func uniformOf[T Value](v T) gpu.Uniform {
	switch x := any(v).(type) {
	case bool:
		var i int32
		if x {
			i = 1
		}
		return gpu.Uniform{Type: gpu.UniformBool, Count: 1, Ints: []int32{i}}
	case int32:
		return gpu.Uniform{Type: gpu.UniformInt, Count: 1, Ints: []int32{x}}
	case int:
		return gpu.Uniform{Type: gpu.UniformInt, Count: 1, Ints: []int32{int32(x)}}
	case float32:
		return gpu.Uniform{Type: gpu.UniformFloat, Count: 1, Floats: []float32{x}}
	case mgl32.Vec2:
		return gpu.Uniform{Type: gpu.UniformVec2, Count: 1, Floats: x[:]}
	case mgl32.Vec3:
		return gpu.Uniform{Type: gpu.UniformVec3, Count: 1, Floats: x[:]}
	case mgl32.Vec4:
		return gpu.Uniform{Type: gpu.UniformVec4, Count: 1, Floats: x[:]}
	}
	panic("unreachable uniform value type")
}

func matrixOf[T Matrix](m T, transpose bool) gpu.Uniform {
	switch x := any(m).(type) {
	case mgl32.Mat3:
		return gpu.Uniform{Type: gpu.UniformMat3, Count: 1, Floats: x[:], Transpose: transpose}
	case mgl32.Mat4:
		return gpu.Uniform{Type: gpu.UniformMat4, Count: 1, Floats: x[:], Transpose: transpose}
	}
	panic("unreachable uniform matrix type")
}
