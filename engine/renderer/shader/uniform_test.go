package shader

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
)

func TestAddressString(t *testing.T) {
	assert.Equal(t, "u_Time", Name("u_Time").String())
	assert.Equal(t, "material.shininess", Member("material", "shininess").String())
	assert.Equal(t, "lights[2].color", Element("lights", 2, "color").String())
	assert.Equal(t, "u_Textures[7]", At("u_Textures", 7).String())
	assert.Equal(t, "lights[0].color", Member("lights", "color").element(0).String())
}

func newUniformProgram(t *testing.T) (*gputest.Device, Program) {
	t.Helper()
	dev := gputest.NewDevice()
	p := NewFromSource(dev, "uniforms", basicSource, quietLogger())
	require.True(t, p.Valid())
	dev.UseProgram(gpu.NoHandle)
	dev.Reset()
	return dev, p
}

func TestSetBindsBeforeUpload(t *testing.T) {
	dev, p := newUniformProgram(t)

	Set(p, Name("u_Enabled"), true)

	assert.Equal(t, []string{"UseProgram", "UniformLocation", "SetUniform"}, dev.CallNames())
	up, ok := dev.LastUpload("u_Enabled")
	require.True(t, ok)
	assert.Equal(t, p.Handle(), up.Program)
	assert.Equal(t, gpu.Uniform{Type: gpu.UniformBool, Count: 1, Ints: []int32{1}}, up.Uniform)
}

func TestSetScalarAndVectorTypes(t *testing.T) {
	dev, p := newUniformProgram(t)

	Set(p, Name("i"), int32(-3))
	Set(p, Name("n"), 7)
	Set(p, Name("f"), float32(0.5))
	Set(p, Member("material", "tint"), mgl32.Vec3{1, 0.5, 0.25})
	Set(p, Element("lights", 3, "color"), mgl32.Vec4{1, 1, 1, 1})
	Set(p, Name("offset"), mgl32.Vec2{2, 4})

	up, _ := dev.LastUpload("i")
	assert.Equal(t, []int32{-3}, up.Uniform.Ints)
	up, _ = dev.LastUpload("n")
	assert.Equal(t, gpu.UniformInt, up.Uniform.Type)
	assert.Equal(t, []int32{7}, up.Uniform.Ints)
	up, _ = dev.LastUpload("f")
	assert.Equal(t, []float32{0.5}, up.Uniform.Floats)
	up, _ = dev.LastUpload("material.tint")
	assert.Equal(t, gpu.UniformVec3, up.Uniform.Type)
	assert.Equal(t, []float32{1, 0.5, 0.25}, up.Uniform.Floats)
	up, ok := dev.LastUpload("lights[3].color")
	require.True(t, ok)
	assert.Equal(t, gpu.UniformVec4, up.Uniform.Type)
	up, _ = dev.LastUpload("offset")
	assert.Equal(t, gpu.UniformVec2, up.Uniform.Type)
}

func TestSetMatrixTranspose(t *testing.T) {
	dev, p := newUniformProgram(t)
	m := mgl32.Translate3D(1, 2, 3)

	SetMatrix(p, Name("modelMat"), m, false)
	SetMatrix(p, Name("normalMat"), m.Mat3(), true)

	up, _ := dev.LastUpload("modelMat")
	assert.Equal(t, gpu.UniformMat4, up.Uniform.Type)
	assert.False(t, up.Uniform.Transpose)
	assert.Equal(t, m[:], up.Uniform.Floats)

	up, _ = dev.LastUpload("normalMat")
	assert.Equal(t, gpu.UniformMat3, up.Uniform.Type)
	assert.True(t, up.Uniform.Transpose)
	assert.Len(t, up.Uniform.Floats, 9)
}

func TestSetArrayResolvesEachElement(t *testing.T) {
	dev, p := newUniformProgram(t)

	SetArray(p, Name("weights"), []float32{0.1, 0.2, 0.3})
	SetArray(p, Member("lights", "intensity"), []float32{1, 2})

	for i, name := range []string{"weights[0]", "weights[1]", "weights[2]"} {
		up, ok := dev.LastUpload(name)
		require.True(t, ok, name)
		assert.Equal(t, []float32{[]float32{0.1, 0.2, 0.3}[i]}, up.Uniform.Floats)
	}
	up, ok := dev.LastUpload("lights[1].intensity")
	require.True(t, ok)
	assert.Equal(t, []float32{2}, up.Uniform.Floats)
}

func TestSetBroadcast(t *testing.T) {
	dev, p := newUniformProgram(t)

	SetBroadcast(p, Member("lights", "enabled"), false, 4)
	SetMatrixBroadcast(p, Name("bones"), mgl32.Ident4(), 3, false)
	SetMatrixArray(p, Name("cascades"), []mgl32.Mat4{mgl32.Ident4(), mgl32.Ident4()}, true)

	assert.Len(t, dev.UploadsTo("lights[3].enabled"), 1)
	assert.Empty(t, dev.UploadsTo("lights[4].enabled"))
	up, _ := dev.LastUpload("lights[0].enabled")
	assert.Equal(t, []int32{0}, up.Uniform.Ints)

	assert.Len(t, dev.UploadsTo("bones[2]"), 1)
	up, _ = dev.LastUpload("cascades[1]")
	assert.True(t, up.Uniform.Transpose)
}

func TestSetAtUsesLocationDirectly(t *testing.T) {
	dev, p := newUniformProgram(t)
	loc := p.Location(Name("u_Time"))
	dev.Reset()

	SetAt(p, loc, float32(1.5))
	SetMatrixAt(p, loc, mgl32.Ident3(), false)

	assert.Equal(t, []string{"UseProgram", "SetUniform", "UseProgram", "SetUniform"}, dev.CallNames())
	assert.Equal(t, "u_Time", dev.Uploads[0].Name)
}

func TestLocationCache(t *testing.T) {
	dev, p := newUniformProgram(t)

	Set(p, Name("u_Color"), mgl32.Vec4{})
	Set(p, Name("u_Color"), mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, 1, dev.LocationLookups)
	assert.Len(t, dev.UploadsTo("u_Color"), 2)
}

func TestInactiveUniformIsIgnored(t *testing.T) {
	dev, p := newUniformProgram(t)
	dev.Inactive["u_Unused"] = true

	Set(p, Name("u_Unused"), float32(1))
	require.Len(t, dev.Uploads, 1)
	assert.Equal(t, gpu.InvalidLocation, dev.Uploads[0].Location)
}

func TestSetInts(t *testing.T) {
	dev, p := newUniformProgram(t)
	SetInts(p, At("u_Textures", 0), []int32{0, 1, 2, 3})

	up, ok := dev.LastUpload("u_Textures[0]")
	require.True(t, ok)
	assert.Equal(t, int32(4), up.Uniform.Count)
	assert.Equal(t, []int32{0, 1, 2, 3}, up.Uniform.Ints)
}
