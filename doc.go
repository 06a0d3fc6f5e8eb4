// Package vfd4 controls a 4-digit vacuum-fluorescent display over a 3-wire
// serial bus.
//
// The VFD4 module shows four 7-segment digits with a two-dot colon in the
// middle. It is driven by a PT6312 compatible controller that listens on
// three lines: clock (CLK), data (DIN) and strobe (STB). The driver
// bit-banges those lines on any periph.io gpio.PinOut.
//
// # Display Characteristics
//
// - 5 positions: digit 1, digit 2, colon, digit 3, digit 4
// - One raw segment byte per position, on its own grid (5 grid mode)
// - 8 dimming levels (0-7)
// - Whole frame latched in one strobe cycle, no tearing
//
// # Hardware Connection
//
// Connect the display to three GPIO outputs:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 5V
//	CLK         → GPIO (any output)
//	DIN         → GPIO (any output)
//	STB         → GPIO (any output)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//		"time"
//
//		"github.com/flavioheleno/vfd4"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		dev, err := vfd4.New(
//			gpioreg.ByName("GPIO17"),
//			gpioreg.ByName("GPIO27"),
//			gpioreg.ByName("GPIO22"),
//			&vfd4.Opts{
//				Intensity: 5,
//				Interval:  time.Second,
//				Draw: func(fb *vfd4.Framebuffer) {
//					fb.PrintTime(0, "15:04", time.Now())
//				},
//			})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		if err := dev.Start(); err != nil {
//			log.Fatal(err)
//		}
//		for range time.Tick(dev.Interval()) {
//			if err := dev.Update(); err != nil {
//				log.Print(err)
//			}
//		}
//	}
//
// # Refresh Cycle
//
// The driver has no goroutine of its own. The caller schedules Update at
// Interval. Each Update runs the Draw callback, if any, with the framebuffer
// and then sends the framebuffer to the controller:
//
//	Uninitialized → Start → Ready → Rendering → Transmitting → Ready
//
// If a pin write fails during the transmission, Update returns the error and
// the frame is dropped. The controller may have latched part of it, so the
// last frame sent successfully is written again. The framebuffer and
// LastFrame are left untouched and the next Update sends the frame again.
//
// # Text
//
// The Framebuffer prints ASCII text with the glyphs from package segment.
// Digit positions take 7-segment glyphs, the colon position takes a few
// punctuation marks:
//
//	fb.Print(0, "12:34")
//	fb.Printf(0, "%2d:%02d", h, m)
//	fb.PrintTime(0, "15:04", time.Now())
//
// Raw segment bytes can be written with SetCell.
//
// # Brightness
//
// SetIntensity changes the dimming level immediately, outside of the refresh
// cycle:
//
//	dev.SetIntensity(2)
//
// # Datasheet
//
// For the command set and bus timing, see the PT6312 datasheet from
// Princeton Technology.
package vfd4
