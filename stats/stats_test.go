package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"gridsnake/game"
	"gridsnake/game/types"
)

type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time { return f.t }

func newTestRecorder() (*Recorder, *fakeNow) {
	clock := &fakeNow{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRecorder()
	r.now = clock.now
	return r, clock
}

func playRound(r *Recorder, clock *fakeNow, score int, d time.Duration) {
	r.OnEvent(game.Event{Kind: game.EventStarted})
	clock.t = clock.t.Add(d)
	r.OnEvent(game.Event{
		Kind:    game.EventGameOver,
		Summary: &game.Summary{Score: score, Level: score/100 + 1, Length: 3 + score/10, Cause: types.WallCollision},
	})
}

func TestRecorderEmpty(t *testing.T) {
	r := NewRecorder()
	if r.GamesPlayed() != 0 || r.AverageScore() != 0 || r.MedianScore() != 0 || r.MaxScore() != 0 {
		t.Error("empty recorder should report zeros")
	}
	if r.AverageDuration() != 0 || r.MaxDuration() != 0 {
		t.Error("empty recorder should report zero durations")
	}
	if r.CurrentRound() != uuid.Nil {
		t.Error("no round before the first start")
	}
}

func TestRecorderRecordsRounds(t *testing.T) {
	r, clock := newTestRecorder()

	playRound(r, clock, 30, 10*time.Second)
	playRound(r, clock, 120, 40*time.Second)
	playRound(r, clock, 0, 4*time.Second)

	if got := r.GamesPlayed(); got != 3 {
		t.Errorf("GamesPlayed = %d, want 3", got)
	}
	if got := r.MaxScore(); got != 120 {
		t.Errorf("MaxScore = %d, want 120", got)
	}
	if got := r.AverageScore(); got != 50 {
		t.Errorf("AverageScore = %v, want 50", got)
	}
	if got := r.MedianScore(); got != 30 {
		t.Errorf("MedianScore = %v, want 30", got)
	}
	if got := r.AverageDuration(); got != 18 {
		t.Errorf("AverageDuration = %v, want 18", got)
	}
	if got := r.MaxDuration(); got != 40 {
		t.Errorf("MaxDuration = %v, want 40", got)
	}

	games := r.Games()
	seen := map[uuid.UUID]bool{}
	for _, g := range games {
		if g.ID == uuid.Nil || seen[g.ID] {
			t.Errorf("round id %v is missing or repeated", g.ID)
		}
		seen[g.ID] = true
	}
	if games[1].Level != 2 || games[1].Cause != types.WallCollision {
		t.Errorf("second round = %+v", games[1])
	}
}

func TestRecorderKeepsRoundID(t *testing.T) {
	r, clock := newTestRecorder()

	r.OnEvent(game.Event{Kind: game.EventStarted})
	id := r.CurrentRound()
	if id == uuid.Nil {
		t.Fatal("start should assign a round id")
	}
	clock.t = clock.t.Add(time.Second)
	r.OnEvent(game.Event{Kind: game.EventGameOver, Summary: &game.Summary{Score: 10}})

	if got := r.Games()[0].ID; got != id {
		t.Errorf("record id = %v, want %v", got, id)
	}
	if r.CurrentRound() != uuid.Nil {
		t.Error("round id should clear after game over")
	}
}

func TestRecorderIgnoresOtherEvents(t *testing.T) {
	r, _ := newTestRecorder()
	for _, kind := range []game.EventKind{game.EventPaused, game.EventResumed, game.EventAppleEaten, game.EventLevelUp} {
		r.OnEvent(game.Event{Kind: kind, Score: 50})
	}
	r.OnEvent(game.Event{Kind: game.EventGameOver})

	if r.GamesPlayed() != 0 {
		t.Errorf("GamesPlayed = %d, want 0", r.GamesPlayed())
	}
}

func TestRecorderCompressesHistory(t *testing.T) {
	r, clock := newTestRecorder()

	total := 0
	for i := 0; i < GroupSize*2+5; i++ {
		score := (i % 7) * 10
		total += score
		playRound(r, clock, score, time.Duration(i%5+1)*time.Second)
	}

	games := r.Games()
	if len(games) != 7 {
		t.Fatalf("stored %d records, want 2 aggregates and 5 rounds", len(games))
	}
	if games[0].CompressionIndex != 1 || games[0].GamesCount != GroupSize {
		t.Errorf("first record = %+v, want an aggregate of %d", games[0], GroupSize)
	}
	if games[6].CompressionIndex != 0 {
		t.Error("latest rounds should stay uncompressed")
	}

	if got := r.GamesPlayed(); got != GroupSize*2+5 {
		t.Errorf("GamesPlayed = %d, want %d", got, GroupSize*2+5)
	}
	want := float64(total) / float64(GroupSize*2+5)
	if got := r.AverageScore(); got < want-1e-9 || got > want+1e-9 {
		t.Errorf("AverageScore = %v, want %v", got, want)
	}
	if got := r.MaxScore(); got != 60 {
		t.Errorf("MaxScore = %d, want 60", got)
	}
	if got := r.MaxDuration(); got != 5 {
		t.Errorf("MaxDuration = %v, want 5", got)
	}
}
