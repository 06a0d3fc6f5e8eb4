package vfd4

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// shiftDelay is the pause between two line transitions. The controller needs
// at least 300ns.
const shiftDelay = time.Microsecond

var errBusy = errors.New("vfd4: bus transaction already in progress")

// bus bit-bangs the 3-wire serial interface of the controller.
//
// Data is shifted LSB first and sampled by the controller on the rising edge
// of the clock. A transaction starts when strobe goes low and is latched when
// it returns high.
type bus struct {
	clk  gpio.PinOut
	data gpio.PinOut
	stb  gpio.PinOut

	sleep func(time.Duration)
	inTx  bool
}

func newBus(clk, data, stb gpio.PinOut) *bus {
	return &bus{clk: clk, data: data, stb: stb, sleep: time.Sleep}
}

// idle drives all lines to their inactive level.
func (b *bus) idle() error {
	if err := out(b.clk, "clk", gpio.Low); err != nil {
		return err
	}
	if err := out(b.data, "data", gpio.Low); err != nil {
		return err
	}
	return out(b.stb, "stb", gpio.High)
}

// beginFrame opens a transaction.
func (b *bus) beginFrame() error {
	if b.inTx {
		return errBusy
	}
	b.inTx = true
	if err := out(b.stb, "stb", gpio.Low); err != nil {
		b.inTx = false
		return err
	}
	b.sleep(shiftDelay)
	return nil
}

// endFrame releases strobe so the controller latches what was shifted in.
// The transaction is closed even if the pin write fails.
func (b *bus) endFrame() error {
	b.inTx = false
	b.sleep(shiftDelay)
	if err := out(b.stb, "stb", gpio.High); err != nil {
		return err
	}
	b.sleep(shiftDelay)
	return nil
}

// sendByte shifts one byte onto the data line, LSB first.
func (b *bus) sendByte(v byte) error {
	for i := uint(0); i < 8; i++ {
		if err := out(b.data, "data", gpio.Level(v&(1<<i) != 0)); err != nil {
			return err
		}
		b.sleep(shiftDelay)
		if err := out(b.clk, "clk", gpio.High); err != nil {
			return err
		}
		b.sleep(shiftDelay)
		if err := out(b.clk, "clk", gpio.Low); err != nil {
			return err
		}
		b.sleep(shiftDelay)
	}
	return nil
}

// tx sends bytes as one strobe-framed transaction.
func (b *bus) tx(bs ...byte) error {
	if err := b.beginFrame(); err != nil {
		return err
	}
	for _, v := range bs {
		if err := b.sendByte(v); err != nil {
			// Put strobe back to idle; the next transaction starts clean.
			return errors.Join(err, b.endFrame())
		}
	}
	return b.endFrame()
}

func out(p gpio.PinOut, role string, l gpio.Level) error {
	if err := p.Out(l); err != nil {
		return fmt.Errorf("vfd4: %s pin: %w", role, err)
	}
	return nil
}
