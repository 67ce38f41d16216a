package driver

import "fmt"

// Stage is a step of the compilation pipeline, in execution order
type Stage int

const (
	StageNone Stage = iota
	StageLex
	StageParse
	StageTacky
	StageCodegen
	StageStacking
	StageLegalize
	StageEmit
	StageDone
)

var stageNames = []string{"none", "lex", "parse", "tacky", "codegen", "stacking", "legalize", "emit", "done"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ParseStage converts a stage name to a Stage
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return StageNone, fmt.Errorf("unknown stage %q", name)
}

// canStopAfter reports whether a stage produces a dumpable intermediate form
func (s Stage) canStopAfter() bool {
	return s >= StageLex && s <= StageLegalize
}
