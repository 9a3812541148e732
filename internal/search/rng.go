package search

// splitmix64 derives independent, well-mixed seeds from one base seed.
type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// deriveSeed gives stream index its own seed, independent of the order streams are consumed in.
func deriveSeed(seed int64, index int) int64 {
	rng := splitmix64{state: uint64(seed) ^ (uint64(index) * 0xd1b54a32d192ed03)}
	return int64(rng.next())
}
