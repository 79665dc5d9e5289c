package ga

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/tfki/galib/gaerr"
	"github.com/tfki/galib/population"
	"github.com/tfki/galib/selection"
	"github.com/tfki/galib/stats"
)

// Config aggregates every run option into the single input ga.New
// takes. The yaml tags let a run's configuration round-trip through a
// YAML file alongside its score log.
type Config struct {
	PopulationSize int     `yaml:"populationSize"`
	NGenerations   int     `yaml:"nGenerations"`
	PCrossover     float64 `yaml:"pCrossover"`
	PMutation      float64 `yaml:"pMutation"`
	PReplacement   float64 `yaml:"pReplacement"`

	Elitism      bool `yaml:"elitism"`
	NBestGenomes int  `yaml:"nBestGenomes"`

	ScoreFrequency  int    `yaml:"scoreFrequency"`
	FlushFrequency  int    `yaml:"flushFrequency"`
	ScoreFilename   string `yaml:"scoreFilename"`
	SelectScores    string `yaml:"selectScores"`
	RecordDiversity bool   `yaml:"recordDiversity"`

	NConvergence int `yaml:"nConvergence"`

	ScalingScheme   string `yaml:"scalingScheme"`
	SelectionScheme string `yaml:"selectionScheme"`
	Terminator      string `yaml:"terminator"`

	Seed int64 `yaml:"seed"`

	// Minimaxi selects minimize ("min") vs maximize ("max").
	Minimaxi string `yaml:"minimaxi"`

	// Verbose gates the optional per-generation progress bar.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the baseline configuration every option
// defaults to when a caller overrides only a subset.
func DefaultConfig() Config {
	return Config{
		PopulationSize:  50,
		NGenerations:    100,
		PCrossover:      0.9,
		PMutation:       0.01,
		PReplacement:    0.2,
		NBestGenomes:    1,
		ScoreFrequency:  1,
		FlushFrequency:  0,
		RecordDiversity: true,
		NConvergence:    10,
		ScalingScheme:   "None",
		SelectionScheme: "Roulette",
		Terminator:      "Generations(100)",
		Minimaxi:        "max",
	}
}

// sanitized reports out-of-range probability and size options through
// gaerr and substitutes the default value for the offending field: a
// bad configuration value is reported, never fatal.
func (c Config) sanitized() Config {
	def := DefaultConfig()
	checkProb := func(field string, v *float64, fallback float64) {
		if *v < 0 || *v > 1 {
			gaerr.Default.Report(gaerr.Here(), "ga.Config", field, gaerr.BadProbValue,
				fmt.Sprintf("%v outside [0,1]", *v))
			*v = fallback
		}
	}
	checkProb("PCrossover", &c.PCrossover, def.PCrossover)
	checkProb("PMutation", &c.PMutation, def.PMutation)
	checkProb("PReplacement", &c.PReplacement, def.PReplacement)
	if c.PopulationSize < 1 {
		gaerr.Default.Report(gaerr.Here(), "ga.Config", "PopulationSize", gaerr.BadPopSize,
			fmt.Sprintf("%d individuals", c.PopulationSize))
		c.PopulationSize = def.PopulationSize
	}
	return c
}

// Sense resolves Minimaxi to a population.Sense.
func (c Config) Sense() population.Sense {
	if strings.EqualFold(c.Minimaxi, "min") {
		return population.Minimize
	}
	return population.Maximize
}

// SelectorMask resolves the comma-separated SelectScores option (e.g.
// "mean,max,diversity") to a stats.Selector bitmask. An empty string
// means "all columns."
// RecordDiversity gates the diversity bit independently of SelectScores,
// since diversity (a full-population pairwise Compare pass) is the
// single most expensive column to record every generation.
func (c Config) SelectorMask() stats.Selector {
	mask := stats.SelectAll
	if strings.TrimSpace(c.SelectScores) != "" {
		mask = 0
		for _, name := range strings.Split(c.SelectScores, ",") {
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "mean", "avg":
				mask |= stats.SelectMean
			case "max", "maximum":
				mask |= stats.SelectMax
			case "min", "minimum":
				mask |= stats.SelectMin
			case "dev", "deviation", "stddev":
				mask |= stats.SelectDeviation
			case "div", "diversity":
				mask |= stats.SelectDiversity
			}
		}
	}
	if !c.RecordDiversity {
		mask &^= stats.SelectDiversity
	}
	return mask
}

// Selection resolves the SelectionScheme option string through
// SelectionSchemeFlag.
func (c Config) Selection() (selection.Scheme, error) {
	var f SelectionSchemeFlag
	if err := f.Set(c.SelectionScheme); err != nil {
		return nil, err
	}
	return f.Get(), nil
}

// Scaling resolves the ScalingScheme option string through
// ScalingSchemeFlag.
func (c Config) Scaling() (selection.Scaling, error) {
	var f ScalingSchemeFlag
	if err := f.Set(c.ScalingScheme); err != nil {
		return nil, err
	}
	return f.Get(), nil
}

// TerminatorSpec resolves the Terminator option string through
// TerminatorFlag.
func (c Config) TerminatorSpec() (TerminatorKind, float64, error) {
	var f TerminatorFlag
	if err := f.Set(c.Terminator); err != nil {
		return 0, 0, err
	}
	kind, arg := f.Get()
	return kind, arg, nil
}

// ApplyLoose merges loosely-typed overrides (e.g. parsed from a CLI flag
// set or an external config map where every value arrives as
// interface{}) into c, coercing through github.com/spf13/cast.
func (c *Config) ApplyLoose(overrides map[string]any) error {
	for k, v := range overrides {
		var err error
		switch strings.ToLower(k) {
		case "populationsize":
			c.PopulationSize, err = cast.ToIntE(v)
		case "ngenerations":
			c.NGenerations, err = cast.ToIntE(v)
		case "pcrossover":
			c.PCrossover, err = cast.ToFloat64E(v)
		case "pmutation":
			c.PMutation, err = cast.ToFloat64E(v)
		case "preplacement":
			c.PReplacement, err = cast.ToFloat64E(v)
		case "elitism":
			c.Elitism, err = cast.ToBoolE(v)
		case "nbestgenomes":
			c.NBestGenomes, err = cast.ToIntE(v)
		case "scorefrequency":
			c.ScoreFrequency, err = cast.ToIntE(v)
		case "flushfrequency":
			c.FlushFrequency, err = cast.ToIntE(v)
		case "scorefilename":
			c.ScoreFilename, err = cast.ToStringE(v)
		case "selectscores":
			c.SelectScores, err = cast.ToStringE(v)
		case "recorddiversity":
			c.RecordDiversity, err = cast.ToBoolE(v)
		case "nconvergence":
			c.NConvergence, err = cast.ToIntE(v)
		case "scalingscheme":
			c.ScalingScheme, err = cast.ToStringE(v)
		case "selectionscheme":
			c.SelectionScheme, err = cast.ToStringE(v)
		case "terminator":
			c.Terminator, err = cast.ToStringE(v)
		case "seed":
			var n int64
			n, err = cast.ToInt64E(v)
			c.Seed = n
		case "minimaxi":
			c.Minimaxi, err = cast.ToStringE(v)
		case "verbose":
			c.Verbose, err = cast.ToBoolE(v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler by deferring to the struct tags
// (an explicit method kept for parity with the config types yaml.v3
// callers in the pack define explicitly, and as the hook point for
// future redaction/versioning).
func (c Config) MarshalYAML() (any, error) {
	type alias Config
	return alias(c), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, delegating to the struct
// tags.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type alias Config
	var a alias
	if err := value.Decode(&a); err != nil {
		return err
	}
	*c = Config(a)
	return nil
}
