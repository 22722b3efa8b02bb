// Package stats keeps per-session figures about finished rounds.
//
// Every round is recorded on its own until GroupSize records of the same
// compression level pile up; those are folded into a single aggregate one
// level up. Totals and averages stay exact while memory stays bounded.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"gridsnake/game"
	"gridsnake/game/types"
)

const GroupSize = 100

// GameRecord is one round, or an aggregate of rounds when GamesCount > 1.
// Level and Cause are only set on single rounds.
type GameRecord struct {
	ID               uuid.UUID
	StartTime        time.Time
	EndTime          time.Time
	Score            int
	Level            int
	Cause            types.CollisionType
	CompressionIndex int
	GamesCount       int
	AverageScore     float64
	MedianScore      float64
	MaxScore         int
	MinScore         int
	AverageDuration  float64 // seconds
	MaxDuration      float64
	MinDuration      float64
}

// Recorder listens to engine events and records each finished round.
type Recorder struct {
	mu      sync.RWMutex
	games   []GameRecord
	current uuid.UUID
	started time.Time
	now     func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func (r *Recorder) OnEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventStarted:
		r.mu.Lock()
		r.current = uuid.New()
		r.started = r.now()
		r.mu.Unlock()
	case game.EventGameOver:
		if ev.Summary != nil {
			r.add(*ev.Summary)
		}
	}
}

// CurrentRound is the id of the round in play, or uuid.Nil before the first start
func (r *Recorder) CurrentRound() uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Recorder) add(s game.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	end := r.now()
	start := r.started
	if start.IsZero() {
		start = end
	}
	id := r.current
	if id == uuid.Nil {
		id = uuid.New()
	}
	d := end.Sub(start).Seconds()

	r.games = append(r.games, GameRecord{
		ID:              id,
		StartTime:       start,
		EndTime:         end,
		Score:           s.Score,
		Level:           s.Level,
		Cause:           s.Cause,
		GamesCount:      1,
		AverageScore:    float64(s.Score),
		MedianScore:     float64(s.Score),
		MaxScore:        s.Score,
		MinScore:        s.Score,
		AverageDuration: d,
		MaxDuration:     d,
		MinDuration:     d,
	})
	r.current = uuid.Nil
	r.started = time.Time{}

	r.compress()
}

// compress folds full groups of same-level records into one record a level up
func (r *Recorder) compress() {
	for level := 0; ; level++ {
		var same, rest []GameRecord
		for _, g := range r.games {
			if g.CompressionIndex == level {
				same = append(same, g)
			} else {
				rest = append(rest, g)
			}
		}
		if len(same) < GroupSize {
			break
		}

		for len(same) >= GroupSize {
			rest = append(rest, merge(same[:GroupSize], level+1))
			same = same[GroupSize:]
		}
		r.games = append(rest, same...)
	}

	sort.SliceStable(r.games, func(i, j int) bool {
		if r.games[i].CompressionIndex != r.games[j].CompressionIndex {
			return r.games[i].CompressionIndex > r.games[j].CompressionIndex
		}
		return r.games[i].StartTime.Before(r.games[j].StartTime)
	})
}

func merge(group []GameRecord, level int) GameRecord {
	out := GameRecord{
		ID:               uuid.New(),
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
		MaxDuration:      group[0].MaxDuration,
		MinDuration:      group[0].MinDuration,
	}

	var totalScore, totalDuration float64
	medians := make([]float64, 0, len(group))
	for _, g := range group {
		out.MaxScore = max(out.MaxScore, g.MaxScore)
		out.MinScore = min(out.MinScore, g.MinScore)
		out.MaxDuration = max(out.MaxDuration, g.MaxDuration)
		out.MinDuration = min(out.MinDuration, g.MinDuration)
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
		out.GamesCount += g.GamesCount
		for i := 0; i < g.GamesCount; i++ {
			medians = append(medians, g.MedianScore)
		}
	}

	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageDuration = totalDuration / float64(out.GamesCount)
	out.MedianScore = median(medians)
	out.Score = out.MaxScore
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

// Games returns a copy of the stored records, aggregates first
func (r *Recorder) Games() []GameRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]GameRecord, len(r.games))
	copy(out, r.games)
	return out
}

func (r *Recorder) GamesPlayed() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, g := range r.games {
		total += g.GamesCount
	}
	return total
}

func (r *Recorder) AverageScore() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	var n int
	for _, g := range r.games {
		total += g.AverageScore * float64(g.GamesCount)
		n += g.GamesCount
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// MedianScore is exact until the first compression; aggregates contribute
// their own median once per round they hold.
func (r *Recorder) MedianScore() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var values []float64
	for _, g := range r.games {
		for i := 0; i < g.GamesCount; i++ {
			values = append(values, g.MedianScore)
		}
	}
	return median(values)
}

func (r *Recorder) MaxScore() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := 0
	for _, g := range r.games {
		best = max(best, g.MaxScore)
	}
	return best
}

// AverageDuration is in seconds
func (r *Recorder) AverageDuration() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	var n int
	for _, g := range r.games {
		total += g.AverageDuration * float64(g.GamesCount)
		n += g.GamesCount
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func (r *Recorder) MaxDuration() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var longest float64
	for _, g := range r.games {
		longest = max(longest, g.MaxDuration)
	}
	return longest
}
