// Package ga implements the GA driver: the generational and
// steady-state evolve loops sharing a state machine, plus the Config
// surface that selects which selection/scaling/terminator scheme a run
// uses. Schemes are chosen by name through flag.Value-shaped setters
// accepting "Name" or "Name(arg)".
package ga

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tfki/galib/selection"
)

const (
	errAlreadySet      = "%sFlag.Set(%s): already set to %s"
	errUnexpectedFn    = "%sFlag.Set(%s): unknown function name %s"
	errUnexpectedParam = "%sFlag.Set(%s): function %s does not accept parameters"
	errInvalidParam    = "%sFlag.Set(%s): param %s should %s"
)

var flagFmt = regexp.MustCompile(`^(\w+)(\(([\w.+-]*)\))?$`)

const (
	schemeRoulette     = "Roulette"
	schemeTournament   = "Tournament"
	schemeRank         = "Rank"
	schemeUniform      = "Uniform"
	scalingLinear      = "Linear"
	scalingSigma       = "SigmaTruncation"
	scalingPower       = "PowerLaw"
	scalingNone        = "None"
	terminatorGens     = "Generations"
	terminatorScore    = "ScoreThreshold"
	terminatorConverge = "Convergence"
)

// SelectionSchemeFlag parses a selection.Scheme by name, flag.Value-
// shaped: "Roulette", "Tournament(3)", "Rank", "Uniform".
type SelectionSchemeFlag struct {
	name   string
	scheme selection.Scheme
}

func (f *SelectionSchemeFlag) String() string {
	if f.name == "" {
		return schemeRoulette
	}
	return f.name
}

// Set implements flag.Value.
func (f *SelectionSchemeFlag) Set(s string) error {
	if f.scheme != nil {
		return fmt.Errorf(errAlreadySet, "SelectionScheme", s, f.name)
	}
	match := flagFmt.FindStringSubmatch(s)
	if match == nil {
		return fmt.Errorf(errUnexpectedFn, "SelectionScheme", s, s)
	}
	fn, arg := match[1], match[3]

	switch fn {
	case schemeRoulette:
		f.scheme = selection.Roulette
	case schemeRank:
		f.scheme = selection.Rank
	case schemeUniform:
		f.scheme = selection.Uniform
	case schemeTournament:
		n, err := strconv.Atoi(arg)
		if err != nil || n < 2 {
			return fmt.Errorf(errInvalidParam, "SelectionScheme", s, arg, "a whole number >= 2")
		}
		f.scheme = selection.Tournament(n)
	default:
		return fmt.Errorf(errUnexpectedFn, "SelectionScheme", s, fn)
	}
	if fn != schemeTournament && arg != "" {
		return fmt.Errorf(errUnexpectedParam, "SelectionScheme", s, fn)
	}
	f.name = s
	return nil
}

// Get returns the parsed scheme, defaulting to Roulette if unset.
func (f *SelectionSchemeFlag) Get() selection.Scheme {
	if f.scheme == nil {
		return selection.Roulette
	}
	return f.scheme
}

// ScalingSchemeFlag parses a selection.Scaling by name: "Linear(2)",
// "SigmaTruncation(1)", "PowerLaw(2)", "None".
type ScalingSchemeFlag struct {
	name    string
	scaling selection.Scaling
}

func (f *ScalingSchemeFlag) String() string {
	if f.name == "" {
		return scalingNone
	}
	return f.name
}

// Set implements flag.Value.
func (f *ScalingSchemeFlag) Set(s string) error {
	if f.scaling != nil {
		return fmt.Errorf(errAlreadySet, "ScalingScheme", s, f.name)
	}
	match := flagFmt.FindStringSubmatch(s)
	if match == nil {
		return fmt.Errorf(errUnexpectedFn, "ScalingScheme", s, s)
	}
	fn, arg := match[1], match[3]

	switch fn {
	case scalingNone:
		f.scaling = selection.RawScore
	case scalingLinear:
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			v = 2.0
		}
		f.scaling = selection.Linear(v)
	case scalingSigma:
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			v = 1.0
		}
		f.scaling = selection.SigmaTruncation(v)
	case scalingPower:
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			v = 1.0005
		}
		f.scaling = selection.PowerLaw(v)
	default:
		return fmt.Errorf(errUnexpectedFn, "ScalingScheme", s, fn)
	}
	f.name = s
	return nil
}

// Get returns the parsed scaling scheme, defaulting to RawScore if
// unset.
func (f *ScalingSchemeFlag) Get() selection.Scaling {
	if f.scaling == nil {
		return selection.RawScore
	}
	return f.scaling
}

// TerminatorKind names which termination predicate a TerminatorFlag
// selects: generations reached, score threshold, or convergence ratio.
type TerminatorKind int

const (
	TerminateGenerations TerminatorKind = iota
	TerminateScoreThreshold
	TerminateConvergence
)

// TerminatorFlag parses a termination predicate by name:
// "Generations(100)", "ScoreThreshold(0.95)", "Convergence(0.999)".
type TerminatorFlag struct {
	name string
	kind TerminatorKind
	arg  float64
	set  bool
}

func (f *TerminatorFlag) String() string {
	if f.name == "" {
		return terminatorGens
	}
	return f.name
}

// Set implements flag.Value.
func (f *TerminatorFlag) Set(s string) error {
	if f.set {
		return fmt.Errorf(errAlreadySet, "Terminator", s, f.name)
	}
	match := flagFmt.FindStringSubmatch(s)
	if match == nil {
		return fmt.Errorf(errUnexpectedFn, "Terminator", s, s)
	}
	fn, arg := match[1], match[3]

	switch fn {
	case terminatorGens:
		f.kind = TerminateGenerations
		n, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf(errInvalidParam, "Terminator", s, arg, "a generation count")
		}
		f.arg = n
	case terminatorScore:
		f.kind = TerminateScoreThreshold
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf(errInvalidParam, "Terminator", s, arg, "a score threshold")
		}
		f.arg = v
	case terminatorConverge:
		f.kind = TerminateConvergence
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf(errInvalidParam, "Terminator", s, arg, "a convergence ratio")
		}
		f.arg = v
	default:
		return fmt.Errorf(errUnexpectedFn, "Terminator", s, fn)
	}
	f.name = s
	f.set = true
	return nil
}

// Get returns the parsed (kind, threshold) pair.
func (f *TerminatorFlag) Get() (TerminatorKind, float64) {
	if !f.set {
		return TerminateGenerations, 100
	}
	return f.kind, f.arg
}
