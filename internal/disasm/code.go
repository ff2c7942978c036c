package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// processJumpDestinations assigns labels to all jump and call destinations
// inside of the listing and references them in the branching instructions.
func processJumpDestinations(lines []Line) {
	lineIndex := make(map[uint16]int, len(lines))
	branchDestinations := set.New[uint16]()
	callDestinations := set.New[uint16]()

	for i, line := range lines {
		lineIndex[line.Address] = i
		if line.data {
			continue
		}
		switch line.Opcode & 0xF000 {
		case 0x1000:
			branchDestinations.Add(line.Opcode & 0x0FFF)
		case 0x2000:
			callDestinations.Add(line.Opcode & 0x0FFF)
			branchDestinations.Add(line.Opcode & 0x0FFF)
		}
	}

	destinations := make([]uint16, 0, len(branchDestinations))
	for dest := range branchDestinations {
		destinations = append(destinations, dest)
	}
	slices.Sort(destinations)

	labels := make(map[uint16]string, len(destinations))
	for _, address := range destinations {
		index, ok := lineIndex[address]
		if !ok {
			handleJumpIntoInstruction(lines, lineIndex, address)
			continue
		}

		name := fmt.Sprintf(labelNaming, address)
		if callDestinations.Contains(address) {
			name = fmt.Sprintf(funcNaming, address)
		}
		lines[index].Label = name
		labels[address] = name
	}

	for i, line := range lines {
		family := line.Opcode & 0xF000
		if line.data || (family != 0x1000 && family != 0x2000) {
			continue
		}
		if name, ok := labels[line.Opcode&0x0FFF]; ok {
			lines[i].Text = fmt.Sprintf("%s %s", Name(line.Opcode), name)
		}
	}
}

// handleJumpIntoInstruction marks the instruction that contains the jump
// destination in its second byte.
func handleJumpIntoInstruction(lines []Line, lineIndex map[uint16]int, address uint16) {
	index, ok := lineIndex[address-1]
	if !ok {
		return // destination outside of the program
	}
	lines[index].Comment = fmt.Sprintf("branch into instruction detected: $%04X", address)
}
