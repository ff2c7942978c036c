package cpu

// Instruction is a decoded 16-bit CHIP-8 instruction word.
type Instruction uint16

// Family returns the high nibble that selects the instruction family.
func (i Instruction) Family() uint8 {
	return uint8(i >> 12)
}

// X returns the first register operand.
func (i Instruction) X() uint8 {
	return uint8(i>>8) & 0x0F
}

// Y returns the second register operand.
func (i Instruction) Y() uint8 {
	return uint8(i>>4) & 0x0F
}

// N returns the low nibble.
func (i Instruction) N() uint8 {
	return uint8(i) & 0x0F
}

// NN returns the low byte.
func (i Instruction) NN() byte {
	return byte(i)
}

// NNN returns the low 12 bits, an address operand.
func (i Instruction) NNN() uint16 {
	return uint16(i) & 0x0FFF
}
