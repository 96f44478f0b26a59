package gacha

// FreePullSummary describes the promotional pulls of one banner.
type FreePullSummary struct {
	HasFreePulls  bool        `json:"hasFreePulls"`
	FreeRarePull  *PullRecord `json:"freeRarePull,omitempty"`
	WasFreeRareUp bool        `json:"wasFreeRareUp"`
	FreePullCount int         `json:"freePullCount"`
}

// SummarizeFreePulls isolates free pulls from a banner's full record set and
// reports the latest free rare, if any.
func SummarizeFreePulls(records []PullRecord, cfg *BannerConfig) FreePullSummary {
	var (
		sum    FreePullSummary
		latest *PullRecord
	)
	for _, r := range records {
		if !r.IsFree {
			continue
		}
		sum.FreePullCount++
		if !r.IsRare() {
			continue
		}
		if latest == nil || CompareRecords(r, *latest) > 0 {
			rr := r
			latest = &rr
		}
	}
	sum.HasFreePulls = sum.FreePullCount > 0
	if latest != nil {
		sum.FreeRarePull = latest
		sum.WasFreeRareUp = cfg.isUp(latest.ItemName)
	}
	return sum
}
