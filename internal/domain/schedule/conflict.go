package schedule

// ConflictReason describes why a time range was rejected.
type ConflictReason string

const (
	ConflictOverlap   ConflictReason = "overlap"
	ConflictDuplicate ConflictReason = "duplicate"
)

// DetectConflicts runs the pairwise interval test over one day's ranges and
// returns, keyed by range index, every range that collides with another.
// Both members of a colliding pair are reported. Exact duplicates get a
// distinct reason that wins over plain overlap.
func DetectConflicts(ranges []TimeRange) map[int]ConflictReason {
	conflicts := make(map[int]ConflictReason)

	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			a, b := ranges[i], ranges[j]

			if a.Start == b.Start && a.End == b.End {
				conflicts[i] = ConflictDuplicate
				conflicts[j] = ConflictDuplicate
				continue
			}

			if a.Overlaps(b) {
				if conflicts[i] != ConflictDuplicate {
					conflicts[i] = ConflictOverlap
				}
				if conflicts[j] != ConflictDuplicate {
					conflicts[j] = ConflictOverlap
				}
			}
		}
	}

	return conflicts
}
