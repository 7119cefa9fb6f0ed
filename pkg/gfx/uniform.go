package gfx

// Uniform is a float or int vector value of one to four components.
type Uniform struct {
	components int
	floats     []float32
	ints       []int32
}

func Float1(x float32) Uniform          { return floatUniform(x) }
func Float2(x, y float32) Uniform       { return floatUniform(x, y) }
func Float3(x, y, z float32) Uniform    { return floatUniform(x, y, z) }
func Float4(x, y, z, w float32) Uniform { return floatUniform(x, y, z, w) }

func Int1(x int32) Uniform          { return intUniform(x) }
func Int2(x, y int32) Uniform       { return intUniform(x, y) }
func Int3(x, y, z int32) Uniform    { return intUniform(x, y, z) }
func Int4(x, y, z, w int32) Uniform { return intUniform(x, y, z, w) }

func (u Uniform) Components() int {
	return u.components
}

func floatUniform(values ...float32) Uniform {
	return Uniform{components: len(values), floats: values}
}

func intUniform(values ...int32) Uniform {
	return Uniform{components: len(values), ints: values}
}

// apply writes u to location. The zero Uniform writes nothing.
func (u Uniform) apply(dev Device, location int32) {
	if u.components == 0 {
		return
	}
	if u.ints != nil {
		dev.Uniformiv(location, u.components, u.ints)
		return
	}
	dev.Uniformfv(location, u.components, u.floats)
}
