// Package vfd4 controls a 4-digit VFD module over a 3-wire serial bus.
//
// The module carries a PT6312 compatible controller fed through clock, data
// and strobe lines that are bit-banged on plain GPIO outputs.
//
// See the examples for how to use this package.
package vfd4

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// MaxIntensity is the brightest dimming level of the controller.
const MaxIntensity = 7

// Errors returned by the driver.
var (
	ErrMissingPin = errors.New("vfd4: clk, data and stb pins are required")
	ErrIntensity  = errors.New("vfd4: intensity must be between 0 and 7")
	ErrInterval   = errors.New("vfd4: update interval must not be negative")
	ErrNotStarted = errors.New("vfd4: not started")
	ErrStarted    = errors.New("vfd4: already started")
	ErrHalted     = errors.New("vfd4: halted")
)

// DrawFunc renders into the framebuffer right before it is sent to the
// display. It runs synchronously inside Update and must return promptly.
type DrawFunc func(fb *Framebuffer)

// Opts is the configuration for the display.
type Opts struct {
	// Dimming level, 0 to 7. Unlike Interval, zero is not a default: it is
	// the dimmest level. Start from DefaultOpts to get full brightness.
	Intensity int
	Interval  time.Duration // Refresh period the scheduler should call Update at (default: 1s)
	Grids     byte          // Controller display mode (default and minimum: Mode5Digits)

	// Optional per-frame renderer, nil if not used
	Draw DrawFunc

	// Optional logger, nil disables logging
	Logger *zerolog.Logger
}

// DefaultOpts is used when New is called with nil options.
var DefaultOpts = Opts{
	Intensity: MaxIntensity,
	Interval:  time.Second,
	Grids:     Mode5Digits,
}

// Display is the surface a text or graphics layer needs from a cell based
// display.
type Display interface {
	Cells() int
	SetCell(i int, v byte)
	Update() error
}

// State is the refresh cycle state of a Dev.
type State int

const (
	Uninitialized State = iota
	Ready
	Rendering
	Transmitting
	Halted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Rendering:
		return "rendering"
	case Transmitting:
		return "transmitting"
	case Halted:
		return "halted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Dev is the device handle for the VFD module.
type Dev struct {
	mu sync.Mutex

	// Communication
	bus  *bus
	ctrl controller

	// Configuration
	intensity int
	interval  time.Duration
	draw      DrawFunc
	log       zerolog.Logger

	fb    *Framebuffer
	state State

	// Last frame the controller latched completely
	last   [Cells]byte
	frames uint64
}

// New creates a VFD device driven through the clk, data and stb pins.
//
// The pins are not touched until Start is called. opts can be nil to use
// DefaultOpts.
func New(clk, data, stb gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if clk == nil || data == nil || stb == nil {
		return nil, ErrMissingPin
	}
	if opts.Intensity < 0 || opts.Intensity > MaxIntensity {
		return nil, fmt.Errorf("%w, got %d", ErrIntensity, opts.Intensity)
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("%w, got %s", ErrInterval, opts.Interval)
	}

	interval := opts.Interval
	if interval == 0 {
		interval = DefaultOpts.Interval
	}
	grids := opts.Grids
	if grids < Mode5Digits {
		grids = Mode5Digits
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("device", "vfd4").Logger()
	}

	b := newBus(clk, data, stb)
	d := &Dev{
		bus:       b,
		ctrl:      &encoder{b: b, grids: grids},
		intensity: opts.Intensity,
		interval:  interval,
		draw:      opts.Draw,
		log:       log,
		fb:        newFramebuffer(log),
	}
	return d, nil
}

// Start puts the bus in its idle state, initializes the controller and sets
// the configured intensity.
func (d *Dev) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case Uninitialized:
	case Halted:
		return ErrHalted
	default:
		return ErrStarted
	}

	if err := d.bus.idle(); err != nil {
		return err
	}
	if err := d.ctrl.initialize(); err != nil {
		return wrap("initialize", err)
	}
	if err := d.ctrl.setIntensity(byte(d.intensity)); err != nil {
		return wrap("set intensity", err)
	}
	d.state = Ready

	d.log.Info().
		Int("intensity", d.intensity).
		Dur("interval", d.interval).
		Stringer("clk", d.bus.clk).
		Stringer("data", d.bus.data).
		Stringer("stb", d.bus.stb).
		Msg("display started")
	return nil
}

// Update runs one refresh cycle: the draw callback, if any, renders into the
// framebuffer, then the whole framebuffer is sent to the display.
//
// When the transmission fails the error is returned and the cycle is
// dropped: the last frame sent successfully is written again so the display
// does not keep a partial frame. The framebuffer is kept as is, so the next
// Update sends the new frame again.
func (d *Dev) Update() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ready(); err != nil {
		return err
	}
	defer func() { d.state = Ready }()

	if d.draw != nil {
		d.state = Rendering
		d.draw(d.fb)
	}
	return d.transmit()
}

// Write replaces the framebuffer with frame and sends it right away,
// bypassing the draw callback. frame must hold exactly Cells bytes.
func (d *Dev) Write(frame []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ready(); err != nil {
		return 0, err
	}
	if len(frame) != Cells {
		return 0, errors.New("vfd4: invalid frame size")
	}
	defer func() { d.state = Ready }()

	copy(d.fb.cells[:], frame)
	if err := d.transmit(); err != nil {
		return 0, err
	}
	return len(frame), nil
}

// SetIntensity changes the dimming level. Once started, the new level is
// sent immediately, independently of the refresh cycle.
func (d *Dev) SetIntensity(level int) error {
	if level < 0 || level > MaxIntensity {
		return fmt.Errorf("%w, got %d", ErrIntensity, level)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == Halted {
		return ErrHalted
	}
	d.intensity = level
	if d.state == Uninitialized {
		return nil
	}
	return wrap("set intensity", d.ctrl.setIntensity(byte(level)))
}

// Intensity returns the current dimming level.
func (d *Dev) Intensity() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.intensity
}

// Interval returns the period Update should be called at.
func (d *Dev) Interval() time.Duration {
	return d.interval
}

// Cells returns the number of display positions.
func (d *Dev) Cells() int {
	return Cells
}

// SetCell sets the raw segment pattern at position i. It panics if i is out
// of range.
func (d *Dev) SetCell(i int, v byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fb.SetCell(i, v)
}

// Framebuffer returns the framebuffer of the display. It must not be used
// concurrently with Update.
func (d *Dev) Framebuffer() *Framebuffer {
	return d.fb
}

// State returns the current refresh cycle state.
func (d *Dev) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// LastFrame returns a copy of the last frame the display latched and the
// number of frames sent successfully so far.
func (d *Dev) LastFrame() ([]byte, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	frame := make([]byte, Cells)
	copy(frame, d.last[:])
	return frame, d.frames
}

// Halt turns the display off.
// After calling Halt, the device does not accept further operations.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.state
	d.state = Halted
	if prev == Uninitialized || prev == Halted {
		return nil
	}
	return wrap("display off", d.ctrl.displayOff())
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("vfd4.Dev{%d cells}", Cells)
}

func (d *Dev) ready() error {
	switch d.state {
	case Uninitialized:
		return ErrNotStarted
	case Halted:
		return ErrHalted
	}
	return nil
}

func (d *Dev) transmit() error {
	d.state = Transmitting
	frame := d.fb.Contents()
	if err := d.ctrl.writeFramebuffer(frame); err != nil {
		d.log.Error().Err(err).Msg("frame dropped")
		// The failed transaction may have latched part of the frame.
		if rerr := d.ctrl.writeFramebuffer(d.last[:]); rerr != nil {
			d.log.Error().Err(rerr).Msg("previous frame not restored")
			err = errors.Join(err, rerr)
		}
		return wrap("write frame", err)
	}
	copy(d.last[:], frame)
	d.frames++
	d.log.Trace().Hex("frame", frame).Uint64("frames", d.frames).Msg("frame sent")
	return nil
}

// wrap adds the failed operation to err, without repeating the package
// prefix.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

type opError struct {
	op  string
	err error
}

func (e *opError) Error() string {
	return "vfd4: " + e.op + ": " + strings.TrimPrefix(e.err.Error(), "vfd4: ")
}

func (e *opError) Unwrap() error { return e.err }

var (
	_ conn.Resource = &Dev{}
	_ Display       = &Dev{}
)
