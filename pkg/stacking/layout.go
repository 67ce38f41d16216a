package stacking

import "github.com/raymyers/tacky-cc/pkg/asm"

// slotSize is the size of an int temporary
const slotSize = 4

// x86-64 frame layout (after the prologue):
//
//	+---------------------------+  <- old SP (before call)
//	| return address            |  +8 from FP
//	| saved FP                  |  +0 from FP
//	+---------------------------+  <- FP (%rbp) points here
//	| first temporary           |  -4
//	| second temporary          |  -8
//	| ...                       |
//	+---------------------------+  <- SP after AllocateStack
//
// Slots are handed out in the order pseudos are first seen.

// slotAllocator maps pseudo names to frame slots for one function
type slotAllocator struct {
	offsets map[string]int64
	size    int64 // bytes used so far
}

func newSlotAllocator() *slotAllocator {
	return &slotAllocator{offsets: make(map[string]int64)}
}

// Slot returns the stack operand for name, allocating it on first use
func (a *slotAllocator) Slot(name string) asm.Stack {
	if ofs, ok := a.offsets[name]; ok {
		return asm.Stack{Offset: ofs}
	}
	a.size += slotSize
	ofs := -a.size
	a.offsets[name] = ofs
	return asm.Stack{Offset: ofs}
}

// FrameSize returns the bytes needed for all allocated slots
func (a *slotAllocator) FrameSize() int64 {
	return a.size
}
