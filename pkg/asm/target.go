package asm

import (
	"fmt"
	"runtime"
)

// Target selects the object format conventions used by the printer
type Target int

const (
	TargetLinux  Target = iota // ELF: plain symbols, GNU-stack note section
	TargetDarwin               // Mach-O: underscore-prefixed symbols, no note section
)

func (t Target) String() string {
	switch t {
	case TargetLinux:
		return "linux"
	case TargetDarwin:
		return "darwin"
	}
	return fmt.Sprintf("target(%d)", int(t))
}

// DefaultTarget returns the target matching the host OS
func DefaultTarget() Target {
	if runtime.GOOS == "darwin" {
		return TargetDarwin
	}
	return TargetLinux
}

// ParseTarget converts a target name to a Target
func ParseTarget(name string) (Target, error) {
	switch name {
	case "linux":
		return TargetLinux, nil
	case "darwin", "macos":
		return TargetDarwin, nil
	}
	return TargetLinux, fmt.Errorf("unknown target %q (want linux or darwin)", name)
}
