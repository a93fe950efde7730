package hcscrgen

import (
	"encoding/binary"
	"fmt"
)

// WithLoadAddress prefixes data with its load address, little endian, the
// way C64 PRG files and most KC tape loaders expect it.
func WithLoadAddress(address uint16, data []byte) []byte {
	out := make([]byte, 2, 2+len(data))
	binary.LittleEndian.PutUint16(out, address)
	return append(out, data...)
}

// CharacterRAMProgram returns the character RAM of r with the profile's
// character RAM address prepended.
func (r *ConversionResult) CharacterRAMProgram() ([]byte, error) {
	if r.Profile.CharacterRAMAddress == 0 {
		return nil, fmt.Errorf("profile %s has no character RAM address", r.Profile.Identifier)
	}
	return WithLoadAddress(r.Profile.CharacterRAMAddress, r.CharacterRAM), nil
}

// ColorRAMProgram returns the color RAM of r with the profile's color RAM
// address prepended.
func (r *ConversionResult) ColorRAMProgram() ([]byte, error) {
	if r.ColorRAM == nil {
		return nil, fmt.Errorf("profile %s has no color RAM", r.Profile.Identifier)
	}
	if r.Profile.ColorRAMAddress == 0 {
		return nil, fmt.Errorf("profile %s has no color RAM address", r.Profile.Identifier)
	}
	return WithLoadAddress(r.Profile.ColorRAMAddress, r.ColorRAM), nil
}
