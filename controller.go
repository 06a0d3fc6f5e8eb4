package vfd4

// Command bytes of the PT6312 family of VFD controllers.
const (
	cmdDisplayMode    byte = 0x00 // low bits select the grid/segment layout
	cmdDataSetting    byte = 0x40 // write display RAM, auto-increment address
	cmdAddress        byte = 0xC0 // low bits are the RAM start address
	cmdDisplayControl byte = 0x80 // low 3 bits are the dimming level
	displayOn         byte = 0x08

	bytesPerGrid = 2
)

// Display mode settings. The module has Cells positions on as many grids,
// so the 4 grid mode (0x00) is never used.
const (
	Mode5Digits byte = 0x01 // 5 grids, 16 segments
	Mode6Digits byte = 0x02 // 6 grids, 16 segments
	Mode7Digits byte = 0x03 // 7 grids, 15 segments
)

// controller is the protocol encoder the Dev talks to.
type controller interface {
	initialize() error
	setIntensity(level byte) error
	writeFramebuffer(cells []byte) error
	displayOff() error
}

// encoder turns driver intents into framed command sequences on a bus.
type encoder struct {
	b     *bus
	grids byte
}

func (e *encoder) initialize() error {
	if err := e.b.tx(cmdDisplayMode | e.grids&0x0F); err != nil {
		return err
	}
	return e.b.tx(cmdDataSetting)
}

func (e *encoder) setIntensity(level byte) error {
	return e.b.tx(cmdDisplayControl | displayOn | level&0x07)
}

// writeFramebuffer sends the whole frame in one transaction from address 0.
// Display RAM holds two bytes per grid, SG1-8 then SG9-16; cell i drives
// grid i+1 through its low byte and the high byte is cleared.
func (e *encoder) writeFramebuffer(cells []byte) error {
	frame := make([]byte, 0, 1+bytesPerGrid*len(cells))
	frame = append(frame, cmdAddress)
	for _, c := range cells {
		frame = append(frame, c, 0x00)
	}
	return e.b.tx(frame...)
}

func (e *encoder) displayOff() error {
	return e.b.tx(cmdDisplayControl)
}

var _ controller = &encoder{}
