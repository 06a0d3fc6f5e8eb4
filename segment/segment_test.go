package segment

import "testing"

func TestASCII(t *testing.T) {
	tests := []struct {
		name   string
		c      byte
		want   byte
		wantOK bool
	}{
		{"space", ' ', Blank, true},
		{"zero", '0', A | B | C | D | E | F, true},
		{"one", '1', B | C, true},
		{"eight", '8', A | B | C | D | E | F | G, true},
		{"upper A", 'A', A | B | C | E | F | G, true},
		{"lower o", 'o', C | D | E | G, true},
		{"minus", '-', Minus, true},
		{"degree", '~', A | B | F | G, true},
		{"no glyph K", 'K', Blank, false},
		{"no glyph hash", '#', Blank, false},
		{"control char", '\n', Blank, false},
		{"DEL", 0x7F, Blank, false},
		{"high byte", 0xC3, Blank, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ASCII(tt.c)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ASCII(%q) = (0x%02X, %v), want (0x%02X, %v)", tt.c, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDots(t *testing.T) {
	tests := []struct {
		c      byte
		want   byte
		wantOK bool
	}{
		{' ', Blank, true},
		{':', Upper | Lower, true},
		{'.', Lower, true},
		{'\'', Upper, true},
		{'5', Blank, false},
		{'A', Blank, false},
	}

	for _, tt := range tests {
		got, ok := Dots(tt.c)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Dots(%q) = (0x%02X, %v), want (0x%02X, %v)", tt.c, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name  string
		glyph byte
		want  byte
	}{
		{"blank", Blank, 0x00},
		{"A", A, 0x08},
		{"B", B, 0x04},
		{"C", C, 0x02},
		{"D", D, 0x40},
		{"E", E, 0x20},
		{"F", F, 0x10},
		{"G stays", G, 0x01},
		{"point dropped", X, 0x00},
		{"all", 0xFF, 0x7F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rotate(tt.glyph); got != tt.want {
				t.Errorf("Rotate(0x%02X) = 0x%02X, want 0x%02X", tt.glyph, got, tt.want)
			}
		})
	}
}

func TestRotateMinusIsStable(t *testing.T) {
	if got := Rotate(Minus); got != Minus {
		t.Errorf("Rotate(Minus) = 0x%02X, want 0x%02X", got, Minus)
	}
}

func TestSwapDots(t *testing.T) {
	tests := []struct {
		in, want byte
	}{
		{Blank, Blank},
		{Upper, Lower},
		{Lower, Upper},
		{Upper | Lower, Upper | Lower},
	}

	for _, tt := range tests {
		if got := SwapDots(tt.in); got != tt.want {
			t.Errorf("SwapDots(0x%02X) = 0x%02X, want 0x%02X", tt.in, got, tt.want)
		}
	}
}

func TestGlyphTableCoversPrintable(t *testing.T) {
	for c := byte(first); c <= last; c++ {
		g, ok := ASCII(c)
		if !ok && g != Blank {
			t.Errorf("ASCII(%q) returned glyph 0x%02X without ok", c, g)
		}
	}
}
