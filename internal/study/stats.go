package study

// SetStats summarizes one completed set. Stages holds the whole deck's
// stage distribution after the set, indexed by stage minus one.
type SetStats struct {
	Cards     int
	Correct   int
	Incorrect int
	Hinted    int
	Stages    [3]int
}

// Summary aggregates a whole study run.
type Summary struct {
	Sets      int
	Cards     int
	Correct   int
	Incorrect int
	Hinted    int
	Stages    [3]int
	Stopped   bool
}

// summary folds the per-set statistics into a run summary.
func (s *Session) summary() Summary {
	out := Summary{Sets: len(s.sets), Stopped: s.stopped, Stages: s.stageCounts()}
	for _, set := range s.sets {
		out.Cards += set.Cards
		out.Correct += set.Correct
		out.Incorrect += set.Incorrect
		out.Hinted += set.Hinted
	}
	return out
}
