// Package cdevpin exposes GPIO lines of the Linux character device interface
// (/dev/gpiochipN) as periph.io output pins.
//
// It lets the display run on hosts where periph.io/x/host has no driver for
// the GPIO controller, or where the sysfs interface is gone.
package cdevpin

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	cdev "github.com/temoto/gpio-cdev-go"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Consumer is the label the lines are requested with, shown by gpioinfo.
const Consumer = "vfd4"

var errNoPWM = errors.New("cdevpin: PWM is not supported")

// Lines is a set of output lines requested together from one chip.
//
// Levels are written to a shared buffer and flushed to the chip in a single
// ioctl, so a Flush for one pin also re-applies the current level of the
// others.
type Lines struct {
	mu    sync.Mutex
	chip  cdev.Chiper
	lines cdev.Lineser
	name  string
	pins  map[uint32]*Pin
}

// Open requests lines as outputs on chip, for example "/dev/gpiochip0".
func Open(chip string, lines ...uint32) (*Lines, error) {
	if len(lines) == 0 {
		return nil, errors.New("cdevpin: no lines requested")
	}
	c, err := cdev.Open(chip, Consumer)
	if err != nil {
		return nil, fmt.Errorf("cdevpin: open %s: %w", chip, err)
	}
	l, err := newLines(c, chip, lines...)
	if err != nil {
		c.Close() //nolint:errcheck
		return nil, err
	}
	return l, nil
}

func newLines(c cdev.Chiper, name string, lines ...uint32) (*Lines, error) {
	ls, err := c.OpenLines(cdev.GPIOHANDLE_REQUEST_OUTPUT, Consumer, lines...)
	if err != nil {
		return nil, fmt.Errorf("cdevpin: request lines %v on %s: %w", lines, name, err)
	}
	l := &Lines{chip: c, lines: ls, name: name, pins: make(map[uint32]*Pin, len(lines))}
	for _, n := range lines {
		l.pins[n] = &Pin{l: l, line: n, set: ls.SetFunc(n)}
	}
	return l, nil
}

// Pin returns the output pin for line, or nil if line was not requested.
func (l *Lines) Pin(line uint32) *Pin {
	return l.pins[line]
}

// Close releases the lines and the chip.
func (l *Lines) Close() error {
	return errors.Join(l.lines.Close(), l.chip.Close())
}

func (l *Lines) String() string {
	return l.name
}

// Pin is one line of a Lines set. It implements gpio.PinOut.
type Pin struct {
	l     *Lines
	line  uint32
	set   cdev.LineSetFunc
	level gpio.Level
}

// Out sets the line level and flushes it to the chip. On failure the buffer
// keeps the previous level, so the next flush of another pin does not apply
// it.
func (p *Pin) Out(l gpio.Level) error {
	p.l.mu.Lock()
	defer p.l.mu.Unlock()

	p.set(value(l))
	if err := p.l.lines.Flush(); err != nil {
		p.set(value(p.level))
		return fmt.Errorf("cdevpin: %s: %w", p, err)
	}
	p.level = l
	return nil
}

func value(l gpio.Level) byte {
	if l {
		return 1
	}
	return 0
}

// PWM is not available on character device lines.
func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return errNoPWM
}

// Name returns the chip and line, for example "gpiochip0/17".
func (p *Pin) Name() string {
	return fmt.Sprintf("%s/%d", strings.TrimPrefix(p.l.name, "/dev/"), p.line)
}

// Number returns the line offset on the chip.
func (p *Pin) Number() int {
	return int(p.line)
}

// Function returns the last level written.
func (p *Pin) Function() string {
	p.l.mu.Lock()
	defer p.l.mu.Unlock()
	return "Out/" + p.level.String()
}

func (p *Pin) String() string {
	return p.Name()
}

// Halt is a no-op. The lines are released by Lines.Close.
func (p *Pin) Halt() error {
	return nil
}

var _ gpio.PinOut = &Pin{}
