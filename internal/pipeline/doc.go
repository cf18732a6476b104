// Package pipeline streams FASTA chunks through a Decomposer on a pool of
// workers and hands the results back in chunk order.
//
// The only contract to implement is Decomposer (Decompose).
// This keeps the pipeline swappable and testable.
package pipeline
