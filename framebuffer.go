package vfd4

import (
	"errors"
	"fmt"
	"time"

	"github.com/flavioheleno/vfd4/segment"
	"github.com/rs/zerolog"
)

// Display geometry of the VFD4 module: four digits with a colon between the
// second and third.
const (
	Cells     = 5
	ColonCell = 2
)

// Blank is the cell value with every segment off.
const Blank byte = segment.Blank

// ErrOverflow is returned when printed text does not fit on the display.
var ErrOverflow = errors.New("vfd4: text does not fit on the display")

// Framebuffer holds one raw segment byte per display position.
//
// Cell indexes are physical positions, left to right; the colon is
// ColonCell. Accessing a cell outside [0, Cells) panics.
type Framebuffer struct {
	cells [Cells]byte
	log   zerolog.Logger
}

func newFramebuffer(log zerolog.Logger) *Framebuffer {
	return &Framebuffer{log: log}
}

// SetCell sets the raw segment pattern at index i.
func (f *Framebuffer) SetCell(i int, v byte) {
	checkCell(i)
	f.cells[i] = v
}

// Cell returns the raw segment pattern at index i.
func (f *Framebuffer) Cell(i int) byte {
	checkCell(i)
	return f.cells[i]
}

// Clear blanks every cell.
func (f *Framebuffer) Clear() {
	for i := range f.cells {
		f.cells[i] = Blank
	}
}

// Contents returns the cells in display order. The slice aliases the
// framebuffer and must not be retained across updates.
func (f *Framebuffer) Contents() []byte {
	return f.cells[:]
}

// Print renders s starting at position pos and returns the number of cells
// written.
//
// Digit cells take 7-segment glyphs, the colon cell takes colon dots.
// Characters without a representation are written blank. A '1' printed on
// the cell after one holding a lone '-' shares the minus cell, so "-1" fits
// in one digit; this also applies to a '-' left by an earlier Print, and the
// merged '1' is not counted. Text beyond the last cell is dropped and
// ErrOverflow returned.
func (f *Framebuffer) Print(pos int, s string) (int, error) {
	checkCell(pos)
	i := pos
	for j := 0; j < len(s); j++ {
		c := s[j]
		if i >= Cells {
			f.log.Error().Str("text", s).Int("pos", pos).Msg("text is too long for the display")
			return i - pos, ErrOverflow
		}
		if i == ColonCell {
			d, ok := segment.Dots(c)
			if !ok {
				f.log.Warn().Str("char", string(c)).Msg("no colon representation")
			}
			f.cells[i] = segment.SwapDots(d)
			i++
			continue
		}
		g, ok := segment.ASCII(c)
		if !ok {
			f.log.Warn().Str("char", string(c)).Msg("no digit representation")
		}
		g = segment.Rotate(g)
		if c == '1' && i > 0 && i-1 != ColonCell && f.cells[i-1] == segment.Minus {
			f.cells[i-1] = g | segment.Minus
			continue
		}
		f.cells[i] = g
		i++
	}
	return i - pos, nil
}

// Printf formats according to format and prints the result at pos.
func (f *Framebuffer) Printf(pos int, format string, a ...any) (int, error) {
	return f.Print(pos, fmt.Sprintf(format, a...))
}

// PrintTime formats t with a time.Format layout and prints the result at
// pos.
func (f *Framebuffer) PrintTime(pos int, layout string, t time.Time) (int, error) {
	return f.Print(pos, t.Format(layout))
}

func checkCell(i int) {
	if i < 0 || i >= Cells {
		panic(fmt.Sprintf("vfd4: cell %d out of range [0, %d)", i, Cells))
	}
}
