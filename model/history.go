package model

// History remembers the hashes of recent generations to detect still lifes and oscillators
type History struct {
	depth  int
	hashes []string
}

// NewHistory keeps up to depth previous generations. A depth below 1 is treated as 1.
func NewHistory(depth int) *History {
	depth = max(1, depth)
	return &History{depth: depth, hashes: make([]string, 0, depth)}
}

// Observe records gen and returns the period of the cycle it closes, or 0 if gen
// matches none of the remembered generations. A still life has period 1.
func (h *History) Observe(gen Generation) int {
	hash := gen.Hash()

	period := 0
	for i := len(h.hashes) - 1; i >= 0; i-- {
		if h.hashes[i] == hash {
			period = len(h.hashes) - i
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.depth {
		h.hashes = h.hashes[1:]
	}
	return period
}

// Reset forgets every remembered generation
func (h *History) Reset() {
	h.hashes = h.hashes[:0]
}
