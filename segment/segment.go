// Package segment encodes characters for 7-segment VFD digits.
//
// Glyphs use the common XABCDEFG bit layout (bit 7 is the decimal point X,
// bit 6 is segment A, bit 0 is segment G):
//
//	   A
//	  ---
//	F |   | B
//	  -G-
//	E |   | C
//	  ---
//	   D
package segment

// Segment bits in XABCDEFG order.
const (
	X byte = 1 << 7
	A byte = 1 << 6
	B byte = 1 << 5
	C byte = 1 << 4
	D byte = 1 << 3
	E byte = 1 << 2
	F byte = 1 << 1
	G byte = 1 << 0
)

// Colon dots.
const (
	Upper byte = 1 << 1
	Lower byte = 1 << 0
)

// Blank is the glyph with every segment off.
const Blank byte = 0

// Minus is the glyph for '-'.
const Minus = G

const (
	first = ' '
	last  = '~'
)

// glyphs covers printable ASCII starting at ' '. Zero means no glyph, except
// for the space itself.
var glyphs = [last - first + 1]byte{
	0b00000000, 0b10110000, 0b00100010, 0b00000000, 0b00000000, 0b01001001, 0b00000000, 0b00000010, //  !"#$%&'
	0b01001110, 0b01111000, 0b01000000, 0b00000000, 0b00010000, 0b00000001, 0b00001000, 0b00100101, // ()*+,-./
	0b01111110, 0b00110000, 0b01101101, 0b01111001, 0b00110011, 0b01011011, 0b01011111, 0b01110000, // 01234567
	0b01111111, 0b01111011, 0b01001000, 0b01011000, 0b00001100, 0b00001001, 0b00011000, 0b01100101, // 89:;<=>?
	0b01101111, 0b01110111, 0b00011111, 0b01001110, 0b00111101, 0b01001111, 0b01000111, 0b01011110, // @ABCDEFG
	0b00110111, 0b00110000, 0b00111100, 0b00000000, 0b00001110, 0b00000000, 0b00010101, 0b01111110, // HIJKLMNO
	0b01100111, 0b01111110, 0b00000101, 0b01011011, 0b00000111, 0b00111110, 0b00111110, 0b00111111, // PQRSTUVW
	0b00110111, 0b00100111, 0b01101101, 0b01001110, 0b00000000, 0b01111000, 0b01000000, 0b00001000, // XYZ[\]^_
	0b00100000, 0b01110111, 0b00011111, 0b00001101, 0b00111101, 0b01001111, 0b01000111, 0b01011110, // `abcdefg
	0b00010111, 0b00010000, 0b00111100, 0b00000000, 0b00001110, 0b00000000, 0b00010101, 0b00011101, // hijklmno
	0b01100111, 0b00000000, 0b00000101, 0b01011011, 0b00000111, 0b00011100, 0b00011100, 0b00000000, // pqrstuvw
	0b00000000, 0b00100111, 0b00000000, 0b00110001, 0b00000110, 0b00000111, 0b01100011, // xyz{|}~
}

// dots are the colon patterns, only a handful of punctuation renders there.
var dots = map[byte]byte{
	'!': Upper | Lower, '"': Upper, '%': Upper | Lower, '\'': Upper,
	'(': Upper | Lower, ')': Upper | Lower, '*': Upper, '+': Upper,
	',': Lower, '-': Upper, '.': Lower, '/': Upper | Lower,
	':': Upper | Lower, ';': Upper | Lower, '=': Upper | Lower,
	']': Upper | Lower, '^': Upper, '_': Lower, '`': Upper,
	'{': Upper | Lower, '|': Upper | Lower, '}': Upper | Lower, '~': Upper,
}

// ASCII returns the digit glyph for c. ok is false when c has no
// representation, in which case the glyph is Blank.
func ASCII(c byte) (glyph byte, ok bool) {
	if c < first || c > last {
		return Blank, false
	}
	glyph = glyphs[c-first]
	return glyph, glyph != Blank || c == ' '
}

// Dots returns the colon pattern for c. ok is false when c has no
// representation on the colon.
func Dots(c byte) (pattern byte, ok bool) {
	if c == ' ' {
		return Blank, true
	}
	pattern, ok = dots[c]
	return pattern, ok
}

// Rotate maps an XABCDEFG glyph onto a digit mounted upside down, where the
// controller outputs are wired in _DEFABCG order. The decimal point is
// dropped.
func Rotate(glyph byte) byte {
	var r byte
	if glyph&A != 0 {
		r |= 0x08
	}
	if glyph&B != 0 {
		r |= 0x04
	}
	if glyph&C != 0 {
		r |= 0x02
	}
	if glyph&D != 0 {
		r |= 0x40
	}
	if glyph&E != 0 {
		r |= 0x20
	}
	if glyph&F != 0 {
		r |= 0x10
	}
	if glyph&G != 0 {
		r |= 0x01
	}
	return r
}

// SwapDots exchanges the upper and lower colon dots, for the same upside down
// mounting as Rotate.
func SwapDots(pattern byte) byte {
	var r byte
	if pattern&Upper != 0 {
		r |= Lower
	}
	if pattern&Lower != 0 {
		r |= Upper
	}
	return r
}
