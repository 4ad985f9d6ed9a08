package effectchain

// Unit is the per-stage configuration and processing contract.
// Configure pushes one profile's parameter set into the underlying
// effect, Process runs a block in place, and Reset clears all internal
// state (filter memory, delay lines, envelopes).
type Unit interface {
	Configure(ctx Context, params Params) error
	Process(block []float64)
	Reset()
}
