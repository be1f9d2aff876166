package tickshell

import (
	"math"
	"sync/atomic"
)

// wheelAccumulator holds the most recent unread scroll delta. Events overwrite
// it rather than add to it, so only the last notch before a read survives.
type wheelAccumulator struct {
	pending atomic.Int64
}

func (w *wheelAccumulator) set(delta int) {
	w.pending.Store(int64(delta))
}

// consume returns the pending delta and resets it to zero.
func (w *wheelAccumulator) consume() int {
	return int(w.pending.Swap(0))
}

// wheelUnits converts a vertical ebiten wheel offset into scroll units.
// Positive units scroll down, towards the user. Any non-zero offset yields at
// least one unit so that trackpad fractions are not lost.
func wheelUnits(dy float64) int {
	if dy == 0 {
		return 0
	}
	u := int(math.Round(-dy))
	if u == 0 {
		if dy > 0 {
			return -1
		}
		return 1
	}
	return u
}
