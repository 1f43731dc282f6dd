package grid

// Materialize produces the displayable pixels for one frame's rank state.
// It allocates a fresh grid on every call and never retains ranks.
func Materialize(ranks RankGrid, replace ReplaceMap) (PixelGrid, error) {
	return Decode(ranks, replace)
}
