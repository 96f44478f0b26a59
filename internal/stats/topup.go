package stats

import (
	"github.com/xtding233/gacha-tracker/internal/gacha"
	"github.com/xtding233/gacha-tracker/internal/game"
	"github.com/xtding233/gacha-tracker/internal/pricing"
)

// TopUpReport prices the path from a banner's current pity to a guaranteed rare.
type TopUpReport struct {
	BannerID            string          `json:"bannerId"`
	Kind                game.BannerKind `json:"kind"`
	PullsToGuarantee    int             `json:"pullsToGuarantee,omitempty"`
	SessionsToGuarantee int             `json:"sessionsToGuarantee,omitempty"`
	TokensRequired      int             `json:"tokensRequired"`
	TokensOwned         int             `json:"tokensOwned"`
	TokensToBuy         int             `json:"tokensToBuy"`
	Plan                pricing.Plan    `json:"plan"`
}

// BudgetReport is what a spending cap buys.
type BudgetReport struct {
	BudgetCents int          `json:"budgetCents"`
	Pulls       int          `json:"pulls"`
	Plan        pricing.Plan `json:"plan"`
}

// TopUp computes the cheapest shop purchase that, with owned tokens, reaches
// the banner's hard pity.
func (s *Service) TopUp(bannerID string, records []gacha.PullRecord, owned int, first pricing.FirstTimeState) (TopUpReport, error) {
	p := s.params.Params()
	recs := groupByBanner(records)[bannerID]
	cfg := gacha.ConfigFor(p, bannerID)

	rep := TopUpReport{BannerID: bannerID, Kind: p.KindOf(bannerID), TokensOwned: max(0, owned)}
	switch rep.Kind {
	case game.KindSession:
		sessions := gacha.GroupSessions(recs, cfg, p.Session)
		sp := gacha.CalcSessionPity(sessions, cfg, p.SessionThresholds, p.Session.Schedule)
		rep.SessionsToGuarantee = sp.SessionsToRareHardPity
		rep.TokensRequired = p.Token.Spent(sp.SessionsToRareHardPity, 0)
	default:
		st := gacha.CalcBannerPity(recs, cfg, p.Thresholds)
		rep.PullsToGuarantee = max(0, p.Thresholds.HardPity-st.PullsSinceLastRare)
		rep.TokensRequired = p.Token.TokensForDraws(rep.PullsToGuarantee)
	}
	rep.TokensToBuy = max(0, rep.TokensRequired-rep.TokensOwned)

	plan, err := pricing.CheapestFor(p.Shop, rep.TokensToBuy, first)
	if err != nil {
		return TopUpReport{}, err
	}
	rep.Plan = plan
	s.logger.Debug("top-up planned", "banner", bannerID, "tokens", rep.TokensToBuy, "cents", plan.TotalCents)
	return rep, nil
}

// Budget returns the purchase granting the most tokens within budgetCents.
func (s *Service) Budget(budgetCents int, first pricing.FirstTimeState) (BudgetReport, error) {
	p := s.params.Params()
	plan, err := pricing.MostTokensFor(p.Shop, budgetCents, first)
	if err != nil {
		return BudgetReport{}, err
	}
	rep := BudgetReport{BudgetCents: budgetCents, Plan: plan}
	if p.Token.PerDraw > 0 {
		rep.Pulls = plan.TotalTokens / p.Token.PerDraw
	}
	return rep, nil
}
