package store

// TodayPomodoros returns the number of work intervals completed today.
// A counter left over from an earlier day reads as zero.
func (s *Store) TodayPomodoros() int {
	var c dayCount
	if !s.getJSON(keyCounter, &c) {
		return 0
	}
	if c.Date != s.clock.Today() {
		return 0
	}
	return c.Count
}

// IncrementTodayPomodoros bumps today's counter and returns the new
// count. Writing the date alongside the count restarts the counter
// implicitly on a new day.
func (s *Store) IncrementTodayPomodoros() int {
	count := s.TodayPomodoros() + 1
	s.setJSON(keyCounter, dayCount{Date: s.clock.Today(), Count: count})
	return count
}
