package nes

// Mapper functions write the mapped address into mappedAddr and return
// whether or not the given address was handled by this mapper.
type Mapper interface {
	cpuMapRead(addr uint16, mappedAddr *uint16) bool
	cpuMapWrite(addr uint16, mappedAddr *uint16) bool
	ppuMapRead(addr uint16, mappedAddr *uint16) bool
	ppuMapWrite(addr uint16, mappedAddr *uint16) bool
}
