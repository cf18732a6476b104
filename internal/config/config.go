// Package config holds every tunable of the decomposer. Values are merged by
// viper from flags, LRDECOMP_* environment variables and an optional config
// file (see internal/cli), then decoded into Params.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrConfig marks fatal start-up problems: bad numbers, missing inputs, an
// unusable monomer library.
var ErrConfig = errors.New("configuration error")

// Errorf wraps ErrConfig with a formatted message.
func Errorf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, a...))
}

// Scoring modes.
const (
	ModeHash  = "hash"
	ModeExact = "exact"
)

// Params is the root settings struct. Keys match the long flag names.
type Params struct {
	// scoring strategy used by the DP: hash | exact
	Mode string `mapstructure:"mode"`

	// k-mer length and rolling hash parameters
	KmerSize int    `mapstructure:"kmer-size"`
	HashBase uint64 `mapstructure:"hash-base"`
	HashMod  uint64 `mapstructure:"hash-mod"`

	// sliding window (in k-mer ends) used as a monomer-sized segment in hash mode
	Window int `mapstructure:"window"`

	// identity floors below which a DP candidate is ignored
	HashFloor  int `mapstructure:"hash-floor"`
	ExactFloor int `mapstructure:"exact-floor"`

	// alternates within this many identity points of the best call are reported
	IdentityDiff int `mapstructure:"identity"`

	// fraction of the pattern length allowed as edit distance
	EditThreshold float64 `mapstructure:"edit-threshold"`

	// refinement search padding and acceptance floor
	RefinePad   int `mapstructure:"refine-pad"`
	RefineFloor int `mapstructure:"refine-floor"`

	// merge and confidence flagging
	MergeDistance int     `mapstructure:"merge-distance"`
	FlagWindow    int     `mapstructure:"flag-window"`
	FlagThreshold float64 `mapstructure:"flag-threshold"`

	// read chunking: chunks start every ChunkSize bases and extend ChunkOverlap
	// bases into the next one; shorter tails than MinChunk are skipped
	ChunkSize    int `mapstructure:"chunk-size"`
	ChunkOverlap int `mapstructure:"chunk-overlap"`
	MinChunk     int `mapstructure:"min-chunk"`

	// number of chunks whose calls are flushed together
	BatchSize int `mapstructure:"batch-size"`
}

// Default returns the parameters of the reference decomposer.
func Default() Params {
	return Params{
		Mode:          ModeHash,
		KmerSize:      5,
		HashBase:      31,
		HashMod:       1_000_000_009,
		Window:        170,
		HashFloor:     50,
		ExactFloor:    70,
		IdentityDiff:  10,
		EditThreshold: 0.5,
		RefinePad:     10,
		RefineFloor:   70,
		MergeDistance: 150,
		FlagWindow:    5,
		FlagThreshold: 80,
		ChunkSize:     5000,
		ChunkOverlap:  200,
		MinChunk:      200,
		BatchSize:     300,
	}
}

// SetDefaults registers Default() under the mapstructure keys so that a
// config file may override any subset.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("mode", d.Mode)
	v.SetDefault("kmer-size", d.KmerSize)
	v.SetDefault("hash-base", d.HashBase)
	v.SetDefault("hash-mod", d.HashMod)
	v.SetDefault("window", d.Window)
	v.SetDefault("hash-floor", d.HashFloor)
	v.SetDefault("exact-floor", d.ExactFloor)
	v.SetDefault("identity", d.IdentityDiff)
	v.SetDefault("edit-threshold", d.EditThreshold)
	v.SetDefault("refine-pad", d.RefinePad)
	v.SetDefault("refine-floor", d.RefineFloor)
	v.SetDefault("merge-distance", d.MergeDistance)
	v.SetDefault("flag-window", d.FlagWindow)
	v.SetDefault("flag-threshold", d.FlagThreshold)
	v.SetDefault("chunk-size", d.ChunkSize)
	v.SetDefault("chunk-overlap", d.ChunkOverlap)
	v.SetDefault("min-chunk", d.MinChunk)
	v.SetDefault("batch-size", d.BatchSize)
}

// FromViper decodes and validates Params.
func FromViper(v *viper.Viper) (Params, error) {
	var p Params
	if err := v.Unmarshal(&p); err != nil {
		return p, Errorf("unable to decode settings: %v", err)
	}
	return p, p.Validate()
}

// Validate applies the invariants every component relies on.
func (p Params) Validate() error {
	switch p.Mode {
	case ModeHash, ModeExact:
	default:
		return Errorf("invalid mode %q (want %s or %s)", p.Mode, ModeHash, ModeExact)
	}
	if p.KmerSize < 1 {
		return Errorf("kmer-size must be ≥ 1")
	}
	if p.HashBase < 2 || p.HashMod < 2 {
		return Errorf("hash-base and hash-mod must be ≥ 2")
	}
	if p.HashMod >= 1<<32 {
		return Errorf("hash-mod must be < 2^32")
	}
	if p.Window < p.KmerSize {
		return Errorf("window (%d) must be ≥ kmer-size (%d)", p.Window, p.KmerSize)
	}
	if p.IdentityDiff < 0 {
		return Errorf("identity must be ≥ 0")
	}
	if p.EditThreshold <= 0 || p.EditThreshold > 1 {
		return Errorf("edit-threshold must be in (0, 1]")
	}
	if p.RefinePad < 0 {
		return Errorf("refine-pad must be ≥ 0")
	}
	if p.MergeDistance < 0 {
		return Errorf("merge-distance must be ≥ 0")
	}
	if p.FlagWindow < 1 {
		return Errorf("flag-window must be ≥ 1")
	}
	if p.ChunkSize < 1 {
		return Errorf("chunk-size must be ≥ 1")
	}
	if p.ChunkOverlap < 0 {
		return Errorf("chunk-overlap must be ≥ 0")
	}
	if p.MinChunk < 1 {
		return Errorf("min-chunk must be ≥ 1")
	}
	if p.BatchSize < 1 {
		return Errorf("batch-size must be ≥ 1")
	}
	return nil
}

// Floor returns the DP identity floor of the configured mode.
func (p Params) Floor() int {
	if p.Mode == ModeExact {
		return p.ExactFloor
	}
	return p.HashFloor
}
