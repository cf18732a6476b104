// Package engine contains the decomposition core: segmentation DP, boundary
// refinement and the per-chunk Engine tying them to the scorers. It never
// imports app, writers, cli, or pipeline; keep it domain-only.
package engine
