package stats

import (
	"log/slog"
	"slices"

	"github.com/xtding233/gacha-tracker/internal/gacha"
	"github.com/xtding233/gacha-tracker/internal/game"
)

// ParamsSource yields the current engine params; *game.Store satisfies it.
type ParamsSource interface {
	Params() game.EngineParams
}

// StaticParams serves a fixed set of params.
type StaticParams game.EngineParams

func (s StaticParams) Params() game.EngineParams { return game.EngineParams(s) }

// BannerReport is the full analytics readout of one banner.
type BannerReport struct {
	BannerID   string          `json:"bannerId"`
	Name       string          `json:"name,omitempty"`
	Kind       game.BannerKind `json:"kind"`
	Configured bool            `json:"configured"`
	TotalPulls int             `json:"totalPulls"`
	PaidPulls  int             `json:"paidPulls"`
	RareCount  int             `json:"rareCount"`     // free rares included
	FreeRares  int             `json:"freeRareCount"` // rares from free pulls
	Spent      int             `json:"spent"`

	// pull-based banners
	Pity        *gacha.PityStatus      `json:"pity,omitempty"`
	Free        *gacha.FreePullSummary `json:"free,omitempty"`
	Segments    []gacha.PitySegment    `json:"segments,omitempty"`
	PityHistory *gacha.Stats           `json:"pityHistory,omitempty"`

	// session-based banners
	Sessions    []gacha.DrawSession      `json:"sessions,omitempty"`
	SessionPity *gacha.SessionPityStatus `json:"sessionPity,omitempty"`
}

// PoolReport is the shared pity of banners drawing from one pool.
type PoolReport struct {
	Pool    string           `json:"pool"`
	Banners []string         `json:"banners"`
	Pity    gacha.PityStatus `json:"pity"`
}

// Report covers every banner present in the records plus all configured pools.
type Report struct {
	ConfigVersion string         `json:"configVersion,omitempty"`
	Banners       []BannerReport `json:"banners"`
	Pools         []PoolReport   `json:"pools"`
}

// Service builds reports against the current config.
type Service struct {
	params ParamsSource
	logger *slog.Logger
}

func NewService(params ParamsSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{params: params, logger: logger}
}

// Params exposes the snapshot the service currently runs with.
func (s *Service) Params() game.EngineParams { return s.params.Params() }

// Build computes the report for an arbitrary mix of banners.
func (s *Service) Build(records []gacha.PullRecord) Report {
	p := s.params.Params()
	byBanner := groupByBanner(records)

	ids := make([]string, 0, len(byBanner))
	for id := range byBanner {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	rep := Report{ConfigVersion: p.Version, Banners: make([]BannerReport, 0, len(ids))}
	for _, id := range ids {
		rep.Banners = append(rep.Banners, s.banner(p, id, byBanner[id]))
	}

	pools := make([]string, 0, len(p.Pools))
	for name := range p.Pools {
		pools = append(pools, name)
	}
	slices.Sort(pools)
	rep.Pools = make([]PoolReport, 0, len(pools))
	for _, name := range pools {
		rep.Pools = append(rep.Pools, poolReport(p, name, byBanner))
	}

	s.logger.Debug("report built", "records", len(records), "banners", len(ids), "pools", len(pools))
	return rep
}

// Banner computes one banner's report from its records. Records of other
// banners are ignored.
func (s *Service) Banner(bannerID string, records []gacha.PullRecord) BannerReport {
	return s.banner(s.params.Params(), bannerID, groupByBanner(records)[bannerID])
}

// Pool computes shared pity for a configured pool; ok is false for unknown pools.
func (s *Service) Pool(name string, records []gacha.PullRecord) (PoolReport, bool) {
	p := s.params.Params()
	if _, ok := p.Pools[name]; !ok {
		return PoolReport{}, false
	}
	return poolReport(p, name, groupByBanner(records)), true
}

// Forecast projects the next rare of a pull-based banner.
func (s *Service) Forecast(bannerID string, records []gacha.PullRecord, trials int, rng gacha.RandomSource) (gacha.ForecastResult, error) {
	p := s.params.Params()
	recs := groupByBanner(records)[bannerID]
	st := gacha.CalcBannerPity(recs, gacha.ConfigFor(p, bannerID), p.Thresholds)
	return gacha.Forecast(st, p.Forecast, trials, rng)
}

func (s *Service) banner(p game.EngineParams, id string, recs []gacha.PullRecord) BannerReport {
	cfg := gacha.ConfigFor(p, id)
	meta, configured := p.Banners[id]
	if !configured {
		s.logger.Debug("banner not configured, up classification disabled", "banner", id)
	}

	br := BannerReport{
		BannerID:   id,
		Name:       meta.Name,
		Kind:       p.KindOf(id),
		Configured: configured,
		TotalPulls: len(recs),
	}
	for _, r := range recs {
		if !r.IsFree {
			br.PaidPulls++
		}
		if r.IsRare() {
			br.RareCount++
			if r.IsFree {
				br.FreeRares++
			}
		}
	}

	switch br.Kind {
	case game.KindSession:
		sessions := gacha.GroupSessions(recs, cfg, p.Session)
		sp := gacha.CalcSessionPity(sessions, cfg, p.SessionThresholds, p.Session.Schedule)
		br.Sessions = sessions
		br.SessionPity = &sp
		br.Spent = p.Token.Spent(len(sessions), 0)
	default:
		pity := gacha.CalcBannerPity(recs, cfg, p.Thresholds)
		free := gacha.SummarizeFreePulls(recs, cfg)
		segs := gacha.SegmentPity(recs)
		hist := gacha.SegmentStats(segs)
		br.Pity = &pity
		br.Free = &free
		br.Segments = segs
		br.PityHistory = &hist
		br.Spent = p.Token.TokensForDraws(br.PaidPulls)
	}
	return br
}

func poolReport(p game.EngineParams, name string, byBanner map[string][]gacha.PullRecord) PoolReport {
	ids := p.Pools[name]
	var recs []gacha.PullRecord
	for _, id := range ids {
		for _, r := range byBanner[id] {
			// free pulls never count toward a shared pool
			if !r.IsFree {
				recs = append(recs, r)
			}
		}
	}
	return PoolReport{
		Pool:    name,
		Banners: append([]string(nil), ids...),
		Pity:    gacha.CalcSharedPity(recs, p.Thresholds),
	}
}

func groupByBanner(records []gacha.PullRecord) map[string][]gacha.PullRecord {
	out := make(map[string][]gacha.PullRecord)
	for _, r := range records {
		out[r.BannerID] = append(out[r.BannerID], r)
	}
	return out
}
