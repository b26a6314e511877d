package core

// Color is a packed 32-bit RGBA value: the top three bytes are R, G, B and
// the low byte is the alpha as stored in the palette (zero for every current
// entry). Display code treats alpha as fully opaque.
type Color uint32

// Bytes expands the packed value into its four channel bytes, most
// significant byte first.
func (c Color) Bytes() [4]uint8 {
	return [4]uint8{
		uint8(c >> 24),
		uint8(c >> 16),
		uint8(c >> 8),
		uint8(c),
	}
}

// Floats returns the color channels as 0.0-1.0 floats in the order the
// vertex layout expects (r, g, b, a). Alpha is forced opaque because the
// palette stores zero in the low byte.
func (c Color) Floats() [4]float32 {
	b := c.Bytes()
	return [4]float32{
		float32(b[0]) / 255.0,
		float32(b[1]) / 255.0,
		float32(b[2]) / 255.0,
		1.0,
	}
}
