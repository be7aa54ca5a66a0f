package scene

// Scene generation must be a pure function of (seed, index), so it
// uses an explicit integer hash rather than shared random state. The
// mixer below is the splitmix64 finalizer; the constants are part of
// the scene format and must not change, or saved seeds stop
// reproducing the same scenes.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// uniform maps (seed, index, lane) to a value in [0, 1). Lanes give
// each body several independent samples (one per axis).
func uniform(seed uint64, index, lane uint32) float64 {
	h := mix64(seed ^ mix64(uint64(index)<<32|uint64(lane)))
	return float64(h>>11) / float64(1<<53)
}
