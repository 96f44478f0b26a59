package gacha

import (
	"fmt"
	"time"
)

var testEpoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// pull builds a non-free record; seq also drives the timestamp, one second apart.
func pull(seq, rarity int, name string) PullRecord {
	return PullRecord{
		RecordID:      fmt.Sprintf("r%04d", seq),
		BannerID:      "limited-1",
		ItemName:      name,
		Rarity:        rarity,
		PullTimestamp: testEpoch.Add(time.Duration(seq) * time.Second).Format("2006-01-02 15:04:05"),
		SequenceID:    fmt.Sprint(seq),
		Category:      CategoryCharacter,
	}
}

func freePull(seq, rarity int, name string) PullRecord {
	r := pull(seq, rarity, name)
	r.IsFree = true
	return r
}

// commons returns n rarity-3 pulls starting at seq from.
func commons(from, n int) []PullRecord {
	out := make([]PullRecord, 0, n)
	for i := range n {
		out = append(out, pull(from+i, 3, "common"))
	}
	return out
}

func upConfig(name string) *BannerConfig {
	return &BannerConfig{BannerID: "limited-1", UpItemName: name}
}

func reversed(in []PullRecord) []PullRecord {
	out := make([]PullRecord, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}
