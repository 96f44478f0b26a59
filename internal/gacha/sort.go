package gacha

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// timestamp layouts accepted from upstream, tried in order
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
}

// parseTimestamp returns unix millis. Bare numbers are epoch seconds,
// or millis when >= 1e12.
func parseTimestamp(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n >= 1e12 || n <= -1e12 {
			return n, true
		}
		return n * 1000, true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

func parseSequence(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

type sortKey struct {
	ts     int64 // 0 when unparseable
	seq    int64
	seqOK  bool
	record string
}

func keyOf(r PullRecord) sortKey {
	ts, _ := parseTimestamp(r.PullTimestamp)
	seq, ok := parseSequence(r.SequenceID)
	return sortKey{ts: ts, seq: seq, seqOK: ok, record: r.RecordID}
}

// compareKeys orders by timestamp, then sequence id, then record id.
// A valid sequence id sorts before an invalid one so the order stays transitive.
func compareKeys(a, b sortKey) int {
	if c := cmp.Compare(a.ts, b.ts); c != 0 {
		return c
	}
	switch {
	case a.seqOK && b.seqOK:
		if c := cmp.Compare(a.seq, b.seq); c != 0 {
			return c
		}
	case a.seqOK:
		return -1
	case b.seqOK:
		return 1
	}
	return strings.Compare(a.record, b.record)
}

// CompareRecords is the chronological order used by every calculator.
func CompareRecords(a, b PullRecord) int {
	return compareKeys(keyOf(a), keyOf(b))
}

// SortRecords returns a chronologically sorted copy; the input is left untouched.
func SortRecords(records []PullRecord) []PullRecord {
	type keyed struct {
		key sortKey
		rec PullRecord
	}
	tmp := make([]keyed, len(records))
	for i, r := range records {
		tmp[i] = keyed{key: keyOf(r), rec: r}
	}
	slices.SortStableFunc(tmp, func(a, b keyed) int { return compareKeys(a.key, b.key) })

	out := make([]PullRecord, len(tmp))
	for i, k := range tmp {
		out[i] = k.rec
	}
	return out
}
