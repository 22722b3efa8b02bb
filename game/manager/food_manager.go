package manager

import (
	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// Rand is the slice of a random source the managers need.
type Rand interface {
	Intn(n int) int
}

// crowdedRatio is the occupancy above which rejection sampling gives way
// to picking from the enumerated free cells.
const crowdedRatio = 0.5

type FoodManager struct {
	grid         types.Grid
	rng          Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, rng Rand, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rng,
		collisionMgr: collisionMgr,
	}
}

// GenerateFood picks a uniformly random cell not covered by the snake.
// It reports false when the snake fills the whole grid.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (types.Point, bool) {
	cells := fm.grid.Cells()
	occupied := snake.Len()
	if occupied >= cells {
		return types.Point{}, false
	}

	if float64(occupied) <= float64(cells)*crowdedRatio {
		for {
			food := types.Point{
				X: fm.rng.Intn(fm.grid.Width),
				Y: fm.rng.Intn(fm.grid.Height),
			}
			if fm.collisionMgr.ValidateSpawnPosition(food, snake) {
				return food, true
			}
		}
	}

	free := make([]types.Point, 0, cells-occupied)
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if fm.collisionMgr.ValidateSpawnPosition(p, snake) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}
