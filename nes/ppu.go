package nes

import "image"

// Ppu is a stub picture-processing-unit collaborator. Picture generation
// is explicitly out of scope for this core (see spec); what is kept is
// the scanline/dot timing skeleton needed to drive two things the CPU
// core's testable properties depend on: the once-per-frame NMI pulse
// during vertical blank, and a frame-complete signal the host loop can
// wait on.
//
// References:
// http://wiki.nesdev.com/w/index.php/PPU_registers
// https://www.youtube.com/watch?v=xdzOvpYPmGE (javidx9)
type Ppu struct {
	Cart *Cartridge

	tblName    [2][1024]byte // NES allows storage for 2 nametables
	tblPallete [32]byte

	ctrl   PpuReg
	mask   PpuReg
	status PpuReg

	oam     objectAttributeMemory
	oamAddr byte

	vramAddr PpuLoopyReg // Current VRAM address, used for PPUDATA access.
	tramAddr PpuLoopyReg // Temporary VRAM address, latched by PPUSCROLL/PPUADDR.
	fineX    byte
	addrLatch  bool // Toggled by each write to PPUSCROLL/PPUADDR.
	dataBuffer byte // PPUDATA reads are delayed by one read, per hardware.

	scanline int
	dot      int

	frameComplete bool
	nmi           bool

	display *Display
}

func NewPpu() *Ppu {
	return &Ppu{
		scanline: -1,
		oam:      make(objectAttributeMemory, 64),
	}
}

func (p *Ppu) ConnectCartridge(c *Cartridge) {
	p.Cart = c
}

func (p *Ppu) ConnectDisplay(d *Display) {
	p.display = d
}

// Clock advances the PPU by one dot. Real pixel generation is not
// implemented; only the frame/scanline bookkeeping needed to pulse NMI at
// the start of vertical blank (scanline 241, dot 1) and to signal frame
// completion (scanline 261/-1 wraparound) is modeled.
func (p *Ppu) Clock() {
	p.clock()

	if p.scanline == 241 && p.dot == 1 {
		p.status.setFlag(statusVBlank)
		if p.ctrl.isFlagSet(ctrlNmi) {
			p.nmi = true
		}
	}
	if p.scanline == -1 && p.dot == 1 {
		p.status.clearFlag(statusVBlank)
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frameComplete = true
		}
	}
}

func (p *Ppu) clock() {}

// GetPatternTable renders a placeholder image for one of the two CHR
// pattern tables; tile decoding is out of scope for this core.
func (p *Ppu) GetPatternTable(i int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 128, 128))
}

// Communicate with main (CPU) bus - used for PPU register access.
func (p *Ppu) cpuRead(addr uint16) byte {
	var data byte

	switch addr {
	case 0x0000: // Controller
	case 0x0001: // Mask
	case 0x0002: // Status
		data = byte(p.status) & 0xE0
		p.status.clearFlag(statusVBlank)
		p.addrLatch = false
	case 0x0003: // OAM Address
	case 0x0004: // OAM Data
		data = p.oam.read(p.oamAddr)
	case 0x0005: // Scroll
	case 0x0006: // Address
	case 0x0007: // Data
		// PPUDATA reads are buffered: the value returned is the one
		// fetched by the *previous* read, except in palette space where
		// reads are immediate. The VRAM address auto-increments per
		// PPUCTRL's increment-mode bit.
		data = p.dataBuffer
		p.dataBuffer = p.ppuRead(p.vramAddr.value())
		if p.vramAddr.value() >= 0x3F00 {
			data = p.dataBuffer
		}
		p.incrementVramAddr()
	}

	return data
}

func (p *Ppu) incrementVramAddr() {
	if p.ctrl.isFlagSet(ctrlVramInc) {
		p.vramAddr += 32
	} else {
		p.vramAddr++
	}
}

func (p *Ppu) cpuWrite(addr uint16, data byte) {
	switch addr {
	case 0x0000: // Controller
		p.ctrl = PpuReg(data)
	case 0x0001: // Mask
		p.mask = PpuReg(data)
	case 0x0002: // Status
	case 0x0003: // OAM Address
		p.oamAddr = data
	case 0x0004: // OAM Data
		p.oam.write(p.oamAddr, data)
	case 0x0005: // Scroll
		if !p.addrLatch {
			p.fineX = data & 0x07
			p.tramAddr.setCoarseX(data >> 3)
		} else {
			p.tramAddr.setFineY(data & 0x07)
			p.tramAddr.setCoarseY(data >> 3)
		}
		p.addrLatch = !p.addrLatch
	case 0x0006: // Address
		if !p.addrLatch {
			p.tramAddr = (p.tramAddr & 0x00FF) | (PpuLoopyReg(data&0x3F) << 8)
		} else {
			p.tramAddr = (p.tramAddr & 0xFF00) | PpuLoopyReg(data)
			p.vramAddr = p.tramAddr
		}
		p.addrLatch = !p.addrLatch
	case 0x0007: // Data
		p.ppuWrite(p.vramAddr.value(), data)
		p.incrementVramAddr()
	}
}

// Communicate with PPU bus.
func (p *Ppu) ppuRead(addr uint16) byte {
	addr &= 0x3FFF // Max addressable range.

	if addr <= 0x1FFF && p.Cart != nil {
		return p.Cart.ppuRead(addr)
	}

	return 0x00
}

func (p *Ppu) ppuWrite(addr uint16, data byte) {
	addr &= 0x3FFF // Max addressable range.

	if addr <= 0x1FFF && p.Cart != nil {
		p.Cart.ppuWrite(addr, data)
	}
}
