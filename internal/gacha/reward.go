package gacha

import "math"

// RewardType is the cumulative reward granted at a session milestone.
type RewardType string

const (
	RewardNone RewardType = "none"
	RewardBox  RewardType = "box"
	RewardUp   RewardType = "up"
)

// RewardSchedule holds two interleaved progressions sharing one period.
// Defaults: box at 10, 26, 42, ... and up at 18, 34, 50, ...
type RewardSchedule struct {
	BoxStart int `json:"boxStart" yaml:"box_start"`
	UpStart  int `json:"upStart" yaml:"up_start"`
	Period   int `json:"period" yaml:"period"`
}

func DefaultRewardSchedule() RewardSchedule {
	return RewardSchedule{BoxStart: 10, UpStart: 18, Period: 16}
}

// NextReward is the next milestone after a given session count.
type NextReward struct {
	Type      RewardType `json:"type"`
	AtSession int        `json:"atSession"`
	Remaining int        `json:"remaining"`
}

func onProgression(n, start, period int) bool {
	return n >= start && (n-start)%period == 0
}

// nextOn returns the smallest term of the progression strictly above n,
// saturating at math.MaxInt.
func nextOn(n, start, period int) int {
	if n < start {
		return start
	}
	k := (n-start)/period + 1
	if k > (math.MaxInt-start)/period {
		return math.MaxInt
	}
	return start + k*period
}

// TypeAt returns the reward earned on reaching session n. Box wins a tie.
func (s RewardSchedule) TypeAt(n int) RewardType {
	if s.Period <= 0 {
		return RewardNone
	}
	switch {
	case onProgression(n, s.BoxStart, s.Period):
		return RewardBox
	case onProgression(n, s.UpStart, s.Period):
		return RewardUp
	}
	return RewardNone
}

// Next finds the first milestone after totalSessions.
func (s RewardSchedule) Next(totalSessions int) NextReward {
	if s.Period <= 0 {
		return NextReward{Type: RewardNone}
	}
	box := nextOn(totalSessions, s.BoxStart, s.Period)
	up := nextOn(totalSessions, s.UpStart, s.Period)
	next := NextReward{Type: RewardBox, AtSession: box}
	if up < box {
		next = NextReward{Type: RewardUp, AtSession: up}
	}
	next.Remaining = next.AtSession - totalSessions
	return next
}

// RewardTypeAt applies the default schedule.
func RewardTypeAt(n int) RewardType { return DefaultRewardSchedule().TypeAt(n) }

// NextRewardAfter applies the default schedule.
func NextRewardAfter(totalSessions int) NextReward {
	return DefaultRewardSchedule().Next(totalSessions)
}
