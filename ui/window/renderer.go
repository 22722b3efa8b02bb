// Package window draws the game in a raylib window. It needs cgo and a
// display, so nothing outside main imports it.
package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/game"
	"gridsnake/game/types"
	"gridsnake/ui"
)

const (
	borderPadding = 10
	statusHeight  = 30
)

// Renderer keeps the latest frame and paints it when Present is called from
// the window loop. Draw makes no raylib calls.
type Renderer struct {
	board    ui.Scoreboard
	frame    game.Frame
	hasFrame bool

	cellSize     int32
	screenWidth  int32
	screenHeight int32
	offsetX      int32
	offsetY      int32
}

func NewRenderer(board ui.Scoreboard) *Renderer {
	return &Renderer{board: board}
}

// WindowSize is the initial window size for a grid at the given cell size
func WindowSize(g types.Grid, cellSize int) (int32, int32) {
	w := int32(g.Width*cellSize) + borderPadding*2
	h := int32(g.Height*cellSize) + borderPadding*2 + statusHeight
	return w, h
}

func (r *Renderer) Draw(f game.Frame) {
	r.frame = f
	r.hasFrame = true
}

func (r *Renderer) updateDimensions(g types.Grid) {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	availableWidth := r.screenWidth - borderPadding*2
	availableHeight := r.screenHeight - borderPadding*2 - statusHeight
	r.cellSize = min(availableWidth/int32(g.Width), availableHeight/int32(g.Height))
	if r.cellSize < 1 {
		r.cellSize = 1
	}

	r.offsetX = (r.screenWidth - r.cellSize*int32(g.Width)) / 2
	r.offsetY = statusHeight + borderPadding
}

func color(c ui.RGB) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

// Present paints the cached frame. It must run on the window thread between
// rl.InitWindow and rl.CloseWindow.
func (r *Renderer) Present() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.Black)
	if !r.hasFrame {
		return
	}

	f := r.frame
	r.updateDimensions(f.Grid)

	gridW := r.cellSize * int32(f.Grid.Width)
	gridH := r.cellSize * int32(f.Grid.Height)
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, gridW+2, gridH+2, color(ui.BorderColor))
	rl.DrawRectangle(r.offsetX, r.offsetY, gridW, gridH, color(ui.BackgroundColor(f.State.Palette)))

	r.fillCell(f.State.Apple, color(ui.AppleColor))

	body := color(ui.SnakeColor(f.State.Palette))
	for i := len(f.State.Snake) - 1; i >= 0; i-- {
		p := f.State.Snake[i]
		if i == 0 {
			r.fillCell(p, color(ui.HeadColor(f.State.Palette)))
			r.drawHeading(p, f.State.Direction)
			continue
		}
		r.fillCell(p, body)
	}

	fontSize := int32(statusHeight / 2)
	rl.DrawText(ui.Status(f, r.board), r.offsetX, borderPadding, fontSize, color(ui.TextColor))

	if lines, ok := ui.Overlay(f); ok {
		r.drawOverlay(lines, gridW, gridH, fontSize)
	}
}

func (r *Renderer) fillCell(p types.Point, c rl.Color) {
	rl.DrawRectangle(
		r.offsetX+int32(p.X)*r.cellSize,
		r.offsetY+int32(p.Y)*r.cellSize,
		r.cellSize, r.cellSize, c)
}

// drawHeading marks the head with a triangle pointing where the snake moves
func (r *Renderer) drawHeading(p types.Point, dir types.Point) {
	x := float32(r.offsetX + int32(p.X)*r.cellSize)
	y := float32(r.offsetY + int32(p.Y)*r.cellSize)
	s := float32(r.cellSize)
	h := s / 2

	var a, b, c rl.Vector2
	switch dir {
	case types.Right:
		a, b, c = rl.Vector2{X: x + s, Y: y + h}, rl.Vector2{X: x + h, Y: y}, rl.Vector2{X: x + h, Y: y + s}
	case types.Left:
		a, b, c = rl.Vector2{X: x, Y: y + h}, rl.Vector2{X: x + h, Y: y + s}, rl.Vector2{X: x + h, Y: y}
	case types.Down:
		a, b, c = rl.Vector2{X: x + h, Y: y + s}, rl.Vector2{X: x + s, Y: y + h}, rl.Vector2{X: x, Y: y + h}
	default:
		a, b, c = rl.Vector2{X: x + h, Y: y}, rl.Vector2{X: x, Y: y + h}, rl.Vector2{X: x + s, Y: y + h}
	}
	// raylib only fills counter-clockwise triangles
	rl.DrawTriangle(a, b, c, rl.Yellow)
}

func (r *Renderer) drawOverlay(lines []string, gridW, gridH, fontSize int32) {
	lineHeight := fontSize + 6
	boxH := lineHeight*int32(len(lines)) + 20
	top := r.offsetY + (gridH-boxH)/2
	rl.DrawRectangle(r.offsetX, top, gridW, boxH, rl.Color{A: 200})

	for i, line := range lines {
		size := fontSize
		if i == 0 {
			size = fontSize * 3 / 2
		}
		textWidth := rl.MeasureText(line, size)
		rl.DrawText(line,
			r.offsetX+(gridW-textWidth)/2,
			top+10+int32(i)*lineHeight,
			size, color(ui.TextColor))
	}
}
