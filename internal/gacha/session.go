package gacha

// DefaultSessionSize is the number of pulls one session dispenses.
const DefaultSessionSize = 10

// DrawSession is one batch of pulls from a session-based banner.
type DrawSession struct {
	SessionNumber        int          `json:"sessionNumber"` // 1-based, chronological
	Timestamp            string       `json:"timestamp"`
	Records              []PullRecord `json:"records"`
	RareRecords          []PullRecord `json:"rareRecords"`
	HasRare              bool         `json:"hasRare"`
	HasUpRare            bool         `json:"hasUpRare"`
	CumulativeRewardType RewardType   `json:"cumulativeRewardType"`
}

// SessionOptions controls batching and milestone labelling.
type SessionOptions struct {
	Size     int
	Schedule RewardSchedule
}

func DefaultSessionOptions() SessionOptions {
	return SessionOptions{Size: DefaultSessionSize, Schedule: DefaultRewardSchedule()}
}

// GroupSessions groups a session banner's records into sessions.
//
// Records sharing the exact same raw timestamp form one bucket. A bucket larger
// than Size+1 is split into chunks of Size, and an undersized trailing chunk is
// folded into the chunk before it.
func GroupSessions(records []PullRecord, cfg *BannerConfig, opts SessionOptions) []DrawSession {
	size := opts.Size
	if size <= 0 {
		size = DefaultSessionSize
	}

	var (
		buckets [][]PullRecord
		index   = make(map[string]int)
	)
	for _, r := range SortRecords(records) {
		i, ok := index[r.PullTimestamp]
		if !ok {
			i = len(buckets)
			index[r.PullTimestamp] = i
			buckets = append(buckets, nil)
		}
		buckets[i] = append(buckets[i], r)
	}

	var sessions []DrawSession
	for _, b := range buckets {
		for _, chunk := range splitBucket(b, size) {
			sessions = append(sessions, newSession(len(sessions)+1, chunk, cfg, opts.Schedule))
		}
	}
	return sessions
}

func splitBucket(b []PullRecord, size int) [][]PullRecord {
	if len(b) <= size+1 {
		return [][]PullRecord{b}
	}
	var chunks [][]PullRecord
	for start := 0; start < len(b); start += size {
		end := min(start+size, len(b))
		chunk := b[start:end]
		if len(chunk) < size && len(chunks) > 0 {
			last := len(chunks) - 1
			chunks[last] = b[last*size : end]
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func newSession(n int, recs []PullRecord, cfg *BannerConfig, sched RewardSchedule) DrawSession {
	s := DrawSession{
		SessionNumber:        n,
		Timestamp:            recs[0].PullTimestamp,
		Records:              append([]PullRecord(nil), recs...),
		CumulativeRewardType: sched.TypeAt(n),
	}
	for _, r := range recs {
		if !r.IsRare() {
			continue
		}
		s.RareRecords = append(s.RareRecords, r)
		s.HasRare = true
		if cfg.isUp(r.ItemName) {
			s.HasUpRare = true
		}
	}
	return s
}
