package engine

// Alt is an alternate monomer call for the same region.
type Alt struct {
	Monomer string
	Score   int
}

// Interval is one monomer call inside a chunk. Start and End are inclusive
// and local to the chunk; ChunkOffset translates them to read coordinates.
type Interval struct {
	ReadID      string
	ChunkOffset int
	Monomer     string
	Start       int
	End         int
	Identity    int
	Alts        []Alt
}
