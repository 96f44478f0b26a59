package gacha

// PitySegment is one guaranteed-rare cycle: the pulls leading up to and
// including a non-free rare. The last segment may still be open.
type PitySegment struct {
	PullCount     int         `json:"pullCount"`
	RareRecord    *PullRecord `json:"rareRecord,omitempty"`
	IncludesFree  bool        `json:"includesFree"`
	FreePullCount int         `json:"freePullCount"`
}

// Closed reports whether the segment ended on a rare.
func (s PitySegment) Closed() bool { return s.RareRecord != nil }

// SegmentPity cuts a banner's history into pity cycles in chronological order.
// Free pulls are tallied on the segment they fall in but never close it.
func SegmentPity(records []PullRecord) []PitySegment {
	var (
		out []PitySegment
		cur PitySegment
	)
	for _, r := range SortRecords(records) {
		if r.IsFree {
			cur.IncludesFree = true
			cur.FreePullCount++
			continue
		}
		cur.PullCount++
		if r.IsRare() {
			rr := r
			cur.RareRecord = &rr
			out = append(out, cur)
			cur = PitySegment{}
		}
	}
	if cur.PullCount > 0 || cur.FreePullCount > 0 {
		out = append(out, cur)
	}
	return out
}

// SegmentStats summarizes the pull counts of closed segments, i.e. the pity
// at which each rare landed.
func SegmentStats(segments []PitySegment) Stats {
	var xs []int
	for _, s := range segments {
		if s.Closed() {
			xs = append(xs, s.PullCount)
		}
	}
	return calcStats(xs)
}
