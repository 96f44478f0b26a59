package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xtding233/gacha-tracker/internal/api/response"
	"github.com/xtding233/gacha-tracker/internal/gacha"
	"github.com/xtding233/gacha-tracker/internal/pricing"
)

const (
	defaultTrials = 10000
	maxTrials     = 100000
	maxSessions   = 1_000_000
)

// RecordsRequest carries raw source records tagged by category.
type RecordsRequest struct {
	Records []json.RawMessage `json:"records"`
}

func (s *Server) decodeRecords(w http.ResponseWriter, r *http.Request) ([]gacha.PullRecord, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var req RecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return nil, false
	}
	recs, err := gacha.DecodeSourceRecords(req.Records)
	if err != nil {
		response.BadRequest(w, err)
		return nil, false
	}
	return recs, true
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status":        "ok",
		"configVersion": s.svc.Params().Version,
	})
}

// report returns analytics for every banner in the records.
func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	recs, ok := s.decodeRecords(w, r)
	if !ok {
		return
	}
	response.Success(w, s.svc.Build(recs))
}

// banner returns one banner's analytics, pull- or session-based per config.
func (s *Server) banner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bannerID")
	recs, ok := s.decodeRecords(w, r)
	if !ok {
		return
	}
	response.Success(w, s.svc.Banner(id, recs))
}

func (s *Server) pool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "pool")
	recs, ok := s.decodeRecords(w, r)
	if !ok {
		return
	}
	rep, found := s.svc.Pool(name, recs)
	if !found {
		response.NotFound(w, fmt.Errorf("pool %q is not configured", name))
		return
	}
	response.Success(w, rep)
}

// forecast runs the Monte Carlo projection. Query: trials, seed (optional).
func (s *Server) forecast(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bannerID")

	trials := defaultTrials
	if v := r.URL.Query().Get("trials"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxTrials {
			response.BadRequest(w, fmt.Errorf("trials must be in 1..%d", maxTrials))
			return
		}
		trials = n
	}
	var rng gacha.RandomSource
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			response.BadRequest(w, errors.New("invalid seed"))
			return
		}
		rng = gacha.NewSeededRNG(seed)
	}

	recs, ok := s.decodeRecords(w, r)
	if !ok {
		return
	}
	res, err := s.svc.Forecast(id, recs, trials, rng)
	if err != nil {
		s.logger.Error("forecast failed", "banner", id, "err", err)
		response.InternalError(w, err)
		return
	}
	response.Success(w, res)
}

// nextReward answers "what milestone comes after N sessions".
func (s *Server) nextReward(w http.ResponseWriter, r *http.Request) {
	total, err := strconv.Atoi(r.URL.Query().Get("total"))
	if err != nil || total < 0 || total > maxSessions {
		response.BadRequest(w, fmt.Errorf("total must be in 0..%d", maxSessions))
		return
	}
	sched := s.svc.Params().Session.Schedule
	response.Success(w, map[string]any{
		"total":   total,
		"current": sched.TypeAt(total),
		"next":    sched.Next(total),
	})
}

// firstTimeState reads ?claimed=a,b; absent means every bonus is still available.
func (s *Server) firstTimeState(r *http.Request) pricing.FirstTimeState {
	v, ok := r.URL.Query()["claimed"]
	if !ok {
		return nil
	}
	var ids []string
	for _, part := range v {
		for _, id := range strings.Split(part, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return s.svc.Params().Shop.ClaimedState(ids)
}

// topUp prices reaching hard pity. Query: owned, claimed.
func (s *Server) topUp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bannerID")
	owned := 0
	if v := r.URL.Query().Get("owned"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(w, errors.New("owned must be a non-negative integer"))
			return
		}
		owned = n
	}
	first := s.firstTimeState(r)

	recs, ok := s.decodeRecords(w, r)
	if !ok {
		return
	}
	rep, err := s.svc.TopUp(id, recs, owned, first)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err)
		return
	}
	response.Success(w, rep)
}

func (s *Server) budget(w http.ResponseWriter, r *http.Request) {
	cents, err := strconv.Atoi(r.URL.Query().Get("cents"))
	if err != nil || cents < 0 || cents > pricing.MaxBudgetCents {
		response.BadRequest(w, fmt.Errorf("cents must be in 0..%d", pricing.MaxBudgetCents))
		return
	}
	rep, err := s.svc.Budget(cents, s.firstTimeState(r))
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err)
		return
	}
	response.Success(w, rep)
}
