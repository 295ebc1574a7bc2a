package lint

import (
	"time"

	"ferrite/internal/diag"
	"ferrite/internal/observ"
	"ferrite/internal/source"
	"ferrite/internal/target"
)

// Stage identifies a step of a single file's pass.
type Stage string

const (
	StageResolve Stage = "resolve" // pick the build strategy
	StageInvoke  Stage = "invoke"  // run the compiler
	StageParse   Stage = "parse"   // parse compiler output
	StageFilter  Stage = "filter"  // attribute diagnostics to the file
)

// Status classifies the outcome of one pass.
type Status uint8

const (
	// StatusClean means the compiler ran and nothing was attributed to
	// the file under edit. Findings in other files still count as clean.
	StatusClean Status = iota
	// StatusFindings means at least one diagnostic was attributed to the
	// file under edit.
	StatusFindings
	// StatusProcessFailure means the compiler could not be launched, or
	// exited non-zero without a single parseable diagnostic.
	StatusProcessFailure
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusFindings:
		return "findings"
	case StatusProcessFailure:
		return "process-failure"
	default:
		return "unknown"
	}
}

// PassStatus reports whether a pass started, changed stage or finished.
type PassStatus int

const (
	// PassStart indicates that a file's pass has begun.
	PassStart PassStatus = iota
	PassStage
	PassEnd
)

// PassEvent describes a pass boundary emitted during Run.
type PassEvent struct {
	Path    string
	Status  PassStatus
	Stage   Stage         // set when Status == PassStage
	Result  *Result       // set when Status == PassEnd
	Elapsed time.Duration // set when Status == PassEnd
}

// PassObserver receives pass events emitted during Run. Observers run on
// the pass goroutine and must return quickly.
type PassObserver func(PassEvent)

// Result is the outcome of one file's pass.
type Result struct {
	Path     string       // as the caller provided it
	Src      *source.File // nil when the file could not be read
	Strategy target.Strategy
	Status   Status
	Bag      *diag.Bag      // diagnostics attributed to the file, in compiler order
	Raw      []byte         // combined compiler output
	Failure  error          // set when Status == StatusProcessFailure
	Timing   *observ.Report // set when timings are enabled
}
