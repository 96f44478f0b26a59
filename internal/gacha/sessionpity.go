package gacha

// SessionThresholds are the session-count guarantee windows.
type SessionThresholds struct {
	RareWindow int `json:"rareWindow" yaml:"rare_window"` // a rare within this many sessions
	UpWindow   int `json:"upWindow" yaml:"up_window"`     // an up rare within this many sessions
}

func DefaultSessionThresholds() SessionThresholds {
	return SessionThresholds{RareWindow: 4, UpWindow: 8}
}

// SessionPityStatus summarizes the guarantees of a session-based banner.
type SessionPityStatus struct {
	TotalSessions            int        `json:"totalSessions"`
	SessionsSinceLastRare    int        `json:"sessionsSinceLastRare"`
	SessionsToRareHardPity   int        `json:"sessionsToRareHardPity"`
	HasUpRare                bool       `json:"hasUpRare"`
	SessionsToUpRareHardPity int        `json:"sessionsToUpRareHardPity"`
	RareCount                int        `json:"rareCount"`
	UpRareCount              int        `json:"upRareCount"`
	NextCumulativeReward     NextReward `json:"nextCumulativeReward"`
}

// CalcSessionPity computes session countdowns from GroupSessions output.
func CalcSessionPity(sessions []DrawSession, cfg *BannerConfig, th SessionThresholds, sched RewardSchedule) SessionPityStatus {
	st := SessionPityStatus{TotalSessions: len(sessions)}

	for i := len(sessions) - 1; i >= 0 && !sessions[i].HasRare; i-- {
		st.SessionsSinceLastRare++
	}
	st.SessionsToRareHardPity = max(0, th.RareWindow-st.SessionsSinceLastRare)

	for _, s := range sessions {
		if s.HasUpRare {
			st.HasUpRare = true
		}
		st.RareCount += len(s.RareRecords)
		for _, r := range s.RareRecords {
			if cfg.isUp(r.ItemName) {
				st.UpRareCount++
			}
		}
	}
	if !st.HasUpRare {
		st.SessionsToUpRareHardPity = max(0, th.UpWindow-st.TotalSessions)
	}

	st.NextCumulativeReward = sched.Next(st.TotalSessions)
	return st
}
