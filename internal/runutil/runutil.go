package runutil

import (
	"fmt"
	"runtime"

	"lrdecomp/internal/fasta"
)

// EffectiveThreads maps the --threads value to a worker count: 0 or less
// means all CPUs.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ValidateChunking builds the chunk windowing and returns warnings for
// settings that lose calls.
// Rules:
//   - an overlap shorter than the longest monomer may split copies at chunk borders
//   - a minimum chunk longer than a full window skips every read
func ValidateChunking(step, overlap, minLen, maxMonomer int) (fasta.ChunkOptions, []string) {
	var warns []string
	if overlap < maxMonomer {
		warns = append(warns, fmt.Sprintf(
			"--chunk-overlap (%d) is shorter than the longest monomer (%d); copies crossing chunk borders may be missed",
			overlap, maxMonomer))
	}
	if minLen > step+overlap {
		warns = append(warns, fmt.Sprintf(
			"--min-chunk (%d) exceeds the chunk window (%d); no read will be decomposed",
			minLen, step+overlap))
	}
	return fasta.ChunkOptions{Step: step, Overlap: overlap, MinLen: minLen}, warns
}
