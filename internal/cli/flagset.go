package cli

import (
	"github.com/spf13/pflag"

	"lrdecomp/internal/config"
)

// addParamFlags registers one flag per config.Params key, defaulting to
// config.Default(). Flag names equal the mapstructure keys so that viper can
// bind them directly.
func addParamFlags(fs *pflag.FlagSet) {
	d := config.Default()

	// Scoring
	fs.String("mode", d.Mode, "scoring mode: hash | exact")
	fs.IntP("identity", "i", d.IdentityDiff, "report alternates within this many identity points of the best call")
	fs.Int("kmer-size", d.KmerSize, "k-mer length for hash mode")
	fs.Uint64("hash-base", d.HashBase, "rolling hash base")
	fs.Uint64("hash-mod", d.HashMod, "rolling hash modulus")
	fs.Int("window", d.Window, "hash-mode segment window (k-mer ends)")
	fs.Int("hash-floor", d.HashFloor, "minimum hash score for a DP candidate")
	fs.Int("exact-floor", d.ExactFloor, "minimum identity for a DP candidate in exact mode")
	fs.Float64("edit-threshold", d.EditThreshold, "edit budget as a fraction of the monomer length")

	// Refinement and merging
	fs.Int("refine-pad", d.RefinePad, "bases searched around a tentative call")
	fs.Int("refine-floor", d.RefineFloor, "minimum identity of a refined call")
	fs.Int("merge-distance", d.MergeDistance, "same-monomer calls whose ends are closer are merged")
	fs.Int("flag-window", d.FlagWindow, "trailing calls averaged for the confidence flag")
	fs.Float64("flag-threshold", d.FlagThreshold, "mean identity below which calls are flagged '?'")

	// Chunking
	fs.Int("chunk-size", d.ChunkSize, "distance between chunk starts (bp)")
	fs.Int("chunk-overlap", d.ChunkOverlap, "bases each chunk extends into the next")
	fs.Int("min-chunk", d.MinChunk, "skip chunks shorter than this (bp)")
	fs.Int("batch-size", d.BatchSize, "chunks whose calls are written together")
}
