package gacha

// Thresholds are the pull-count pity points of a pull-based banner.
type Thresholds struct {
	SoftPity int `json:"softPity" yaml:"soft"` // odds start rising from here
	HardPity int `json:"hardPity" yaml:"hard"` // a rare is certain here
}

// DefaultThresholds returns the observed game defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{SoftPity: 65, HardPity: 80}
}

// PityStatus is a snapshot of a banner's pity counters after its latest pull.
type PityStatus struct {
	PullsSinceLastRare   int   `json:"pullsSinceLastRare"`
	PullsSinceLast5Star  int   `json:"pullsSinceLast5Star"`
	PullsSinceLastUpRare int   `json:"pullsSinceLastUpRare"`
	CurrentStreak        int   `json:"currentStreak"`
	InOddsBoostZone      bool  `json:"inOddsBoostZone"`
	HardPityReached      bool  `json:"hardPityReached"`
	LastRareWasUp        *bool `json:"lastRareWasUp,omitempty"` // nil until a rare was seen, or for shared pools
	HasRareInBanner      bool  `json:"hasRareInBanner"`
}

// pityCounter walks sorted records and keeps the running counters.
type pityCounter struct {
	rare      int
	secondary int
	upRare    int

	hasRare   bool
	lastUp    *bool
	classify  bool
	bannerCfg *BannerConfig
}

func (p *pityCounter) observe(r PullRecord) {
	// free pulls neither advance nor reset anything
	if r.IsFree {
		return
	}
	p.rare++
	p.secondary++
	p.upRare++

	if r.Rarity >= RaritySecondary {
		p.secondary = 0
	}
	if r.Rarity != RarityRare {
		return
	}
	p.hasRare = true
	p.rare = 0
	if !p.classify {
		return
	}
	up := p.bannerCfg.isUp(r.ItemName)
	p.lastUp = &up
	if up {
		p.upRare = 0
	}
}

func (p *pityCounter) status(th Thresholds) PityStatus {
	st := PityStatus{
		PullsSinceLastRare:   p.rare,
		PullsSinceLast5Star:  p.secondary,
		PullsSinceLastUpRare: p.upRare,
		CurrentStreak:        p.rare,
		InOddsBoostZone:      p.rare >= th.SoftPity,
		HardPityReached:      p.rare >= th.HardPity,
		LastRareWasUp:        p.lastUp,
		HasRareInBanner:      p.hasRare,
	}
	if !p.classify {
		st.PullsSinceLastUpRare = 0
		st.LastRareWasUp = nil
	}
	return st
}

// CalcBannerPity computes pity for the records of exactly one banner.
// cfg may be nil, in which case no rare counts as up.
func CalcBannerPity(records []PullRecord, cfg *BannerConfig, th Thresholds) PityStatus {
	pc := pityCounter{classify: true, bannerCfg: cfg}
	for _, r := range SortRecords(records) {
		pc.observe(r)
	}
	return pc.status(th)
}

// CalcSharedPity computes one pity counter over the union of several banners.
// No up classification is attempted since the banners have different up items.
func CalcSharedPity(records []PullRecord, th Thresholds) PityStatus {
	pc := pityCounter{}
	for _, r := range SortRecords(records) {
		pc.observe(r)
	}
	return pc.status(th)
}
