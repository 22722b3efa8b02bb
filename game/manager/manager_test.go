package manager

import (
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"gridsnake/game/entity"
	"gridsnake/game/types"
)

func TestCheckCollision(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 5, Height: 4})
	snake := entity.NewSnake([]types.Point{{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 0, Y: 2}})

	tests := []struct {
		name string
		pos  types.Point
		want types.CollisionType
	}{
		{"free cell", types.Point{X: 3, Y: 2}, types.NoCollision},
		{"left wall", types.Point{X: -1, Y: 0}, types.WallCollision},
		{"right wall", types.Point{X: 5, Y: 0}, types.WallCollision},
		{"top wall", types.Point{X: 0, Y: -1}, types.WallCollision},
		{"bottom wall", types.Point{X: 0, Y: 4}, types.WallCollision},
		{"neck", types.Point{X: 1, Y: 2}, types.SelfCollision},
		{"tail", types.Point{X: 0, Y: 2}, types.SelfCollision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cm.CheckCollision(tt.pos, snake); got != tt.want {
				t.Errorf("CheckCollision(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestGenerateFoodAvoidsSnake(t *testing.T) {
	grid := types.Grid{Width: 4, Height: 3}
	rng := rand.New(rand.NewSource(7))
	fm := NewFoodManager(grid, rng, NewCollisionManager(grid))

	sparse := entity.NewSnake([]types.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	crowded := entity.NewSnake([]types.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 0, Y: 2}, {X: 1, Y: 2},
	})

	for _, snake := range []*entity.Snake{sparse, crowded} {
		for i := 0; i < 200; i++ {
			food, ok := fm.GenerateFood(snake)
			if !ok {
				t.Fatalf("no food for a snake of %d cells", snake.Len())
			}
			if !grid.Contains(food) || snake.Occupies(food) {
				t.Fatalf("food %v is off the grid or on the snake", food)
			}
		}
	}
}

func TestGenerateFoodCoversEveryFreeCell(t *testing.T) {
	grid := types.Grid{Width: 3, Height: 3}
	fm := NewFoodManager(grid, rand.New(rand.NewSource(3)), NewCollisionManager(grid))
	snake := entity.NewSnake([]types.Point{{X: 1, Y: 1}})

	seen := make(map[types.Point]bool)
	for i := 0; i < 2000; i++ {
		food, _ := fm.GenerateFood(snake)
		seen[food] = true
	}
	if len(seen) != 8 {
		t.Errorf("apple reached %d cells, want all 8 free cells", len(seen))
	}
}

func TestGenerateFoodFullBoard(t *testing.T) {
	grid := types.Grid{Width: 2, Height: 1}
	fm := NewFoodManager(grid, rand.New(rand.NewSource(1)), NewCollisionManager(grid))
	snake := entity.NewSnake([]types.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})

	if _, ok := fm.GenerateFood(snake); ok {
		t.Error("expected no food on a full board")
	}
}

func testRules() Progression {
	return Progression{
		PointsPerApple: 10,
		PointsPerLevel: 100,
		BaseInterval:   150 * time.Millisecond,
		MinInterval:    50 * time.Millisecond,
		SpeedFactor:    0.9,
	}
}

func TestStateManagerLevelFollowsScore(t *testing.T) {
	sm := NewStateManager(testRules(), rand.New(rand.NewSource(1)))

	for apples := 1; apples <= 35; apples++ {
		sm.AddApple()
		up := sm.CheckLevelUp()

		score := apples * 10
		if sm.GetScore() != score {
			t.Fatalf("score = %d, want %d", sm.GetScore(), score)
		}
		if want := score/100 + 1; sm.GetLevel() != want {
			t.Fatalf("level = %d at score %d, want %d", sm.GetLevel(), score, want)
		}
		if up != (score%100 == 0) {
			t.Errorf("level up reported %v at score %d", up, score)
		}
	}
}

func TestStateManagerIntervalFloor(t *testing.T) {
	rules := testRules()
	rules.PointsPerLevel = 10
	sm := NewStateManager(rules, rand.New(rand.NewSource(1)))

	prev := sm.GetInterval()
	for i := 0; i < 40; i++ {
		sm.AddApple()
		if !sm.CheckLevelUp() {
			t.Fatalf("apple %d should level up", i)
		}
		got := sm.GetInterval()
		if got < rules.MinInterval {
			t.Fatalf("interval %v below floor", got)
		}
		if got > prev {
			t.Fatalf("interval grew from %v to %v", prev, got)
		}
		prev = got
	}
	if prev != rules.MinInterval {
		t.Errorf("interval = %v, want clamped to %v", prev, rules.MinInterval)
	}

	sm.Reset()
	if sm.GetInterval() != rules.BaseInterval || sm.GetLevel() != 1 || sm.GetScore() != 0 {
		t.Error("Reset did not restore the baseline")
	}
	if sm.GetPalette() != (types.Palette{}) {
		t.Errorf("palette = %+v after reset", sm.GetPalette())
	}
}

func TestStateManagerPaletteChangesColour(t *testing.T) {
	rules := testRules()
	rules.PointsPerLevel = 10
	sm := NewStateManager(rules, rand.New(rand.NewSource(99)))

	for i := 0; i < 50; i++ {
		before := sm.GetPalette()
		sm.AddApple()
		sm.CheckLevelUp()
		after := sm.GetPalette()

		if after.Snake == before.Snake {
			t.Fatalf("level %d kept snake colour %d", sm.GetLevel(), after.Snake)
		}
		if after.Snake < 0 || after.Snake >= types.SnakeColors {
			t.Fatalf("snake colour %d out of range", after.Snake)
		}
		if want := (sm.GetLevel() - 1) % types.Backgrounds; after.Background != want {
			t.Fatalf("background = %d at level %d, want %d", after.Background, sm.GetLevel(), want)
		}
	}
}
