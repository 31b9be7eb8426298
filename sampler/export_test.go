package sampler

// SetCounts primes one coordinate's accept/reject counters so tuning
// behavior can be tested without running a chain.
func (s *Metropolis) SetCounts(i int, accepted, rejected float64) {
	s.accepted[i] = accepted
	s.rejected[i] = rejected
}
