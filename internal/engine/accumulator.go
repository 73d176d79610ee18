package engine

// LengthQty is a run of identical-length pieces feeding a rip.
type LengthQty struct {
	Length float64 // mm
	Qty    int
}

// AccumulateRips lays the given pieces end-to-end, in the given order,
// into rips of capacity maxRipLength and returns the number of rips
// used. A piece that would push the running length over capacity closes
// the current rip and starts the next one; a non-empty trailing rip is
// counted. The result is minimal for the supplied order only; callers
// own the ordering and reordering may pack tighter.
func AccumulateRips(pieces []LengthQty, maxRipLength float64) int {
	var running float64
	count := 0
	for _, p := range pieces {
		for i := 0; i < p.Qty; i++ {
			running += p.Length
			if running > maxRipLength {
				count++
				running = p.Length
			}
		}
	}
	if running > 0 {
		count++
	}
	return count
}
