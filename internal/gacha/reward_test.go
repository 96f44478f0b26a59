package gacha

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewardTypeAt(t *testing.T) {
	assert.Equal(t, RewardBox, RewardTypeAt(10))
	assert.Equal(t, RewardUp, RewardTypeAt(18))
	assert.Equal(t, RewardBox, RewardTypeAt(26))
	assert.Equal(t, RewardUp, RewardTypeAt(34))

	for _, n := range []int{-16, 0, 1, 9, 11, 17, 19, 25, 27} {
		assert.Equal(t, RewardNone, RewardTypeAt(n), "n=%d", n)
	}
}

func TestRewardTypeAtPeriodic(t *testing.T) {
	for n := 10; n < 200; n++ {
		assert.Equal(t, RewardTypeAt(n), RewardTypeAt(n+16), "n=%d", n)
	}
}

func TestNextRewardAfter(t *testing.T) {
	tests := []struct {
		total int
		want  NextReward
	}{
		{0, NextReward{Type: RewardBox, AtSession: 10, Remaining: 10}},
		{9, NextReward{Type: RewardBox, AtSession: 10, Remaining: 1}},
		{10, NextReward{Type: RewardUp, AtSession: 18, Remaining: 8}},
		{17, NextReward{Type: RewardUp, AtSession: 18, Remaining: 1}},
		{18, NextReward{Type: RewardBox, AtSession: 26, Remaining: 8}},
		{33, NextReward{Type: RewardUp, AtSession: 34, Remaining: 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextRewardAfter(tt.total), "total=%d", tt.total)
	}
}

func TestRewardScheduleTieGoesToBox(t *testing.T) {
	s := RewardSchedule{BoxStart: 10, UpStart: 10, Period: 8}

	assert.Equal(t, RewardBox, s.TypeAt(18))
	assert.Equal(t, NextReward{Type: RewardBox, AtSession: 10, Remaining: 5}, s.Next(5))
}

func TestRewardScheduleDisabled(t *testing.T) {
	s := RewardSchedule{}

	assert.Equal(t, RewardNone, s.TypeAt(10))
	assert.Equal(t, NextReward{Type: RewardNone}, s.Next(3))
}

func TestNextRewardAfterSaturates(t *testing.T) {
	next := NextRewardAfter(math.MaxInt - 3)

	assert.Equal(t, math.MaxInt, next.AtSession)
	assert.Equal(t, 3, next.Remaining)
}
