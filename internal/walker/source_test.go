package walker_test

// scriptedSource replays fixed draws and counts how many were taken.
// Exhausted queues yield 0.
type scriptedSource struct {
	floats []float64
	ints   []int
	draws  int
}

func (s *scriptedSource) Float64() float64 {
	s.draws++
	if len(s.floats) == 0 {
		return 0
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedSource) Intn(n int) int {
	s.draws++
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}
