package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"gridsnake/game"
	"gridsnake/game/types"
	"gridsnake/input"
)

const (
	boardTop  = 1 // row of the top border; the status line sits above it
	cellWidth = 2 // terminal cells are roughly twice as tall as wide
)

// TerminalRenderer draws the board on a tcell screen.
type TerminalRenderer struct {
	screen tcell.Screen
	board  Scoreboard
}

func NewTerminalRenderer(screen tcell.Screen, board Scoreboard) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		board:  board,
	}
}

func style(fg, bg RGB) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
}

// cellOrigin is the screen column and row of a grid cell's left half
func cellOrigin(p types.Point) (int, int) {
	return 1 + p.X*cellWidth, boardTop + 1 + p.Y
}

func (r *TerminalRenderer) Draw(f game.Frame) {
	r.screen.Clear()

	bg := BackgroundColor(f.State.Palette)
	r.drawText(0, 0, Status(f, r.board), tcell.StyleDefault.Bold(true))
	r.drawBorder(f.Grid)

	empty := style(bg, bg)
	for y := 0; y < f.Grid.Height; y++ {
		for x := 0; x < f.Grid.Width; x++ {
			r.setCell(types.Point{X: x, Y: y}, ' ', empty)
		}
	}

	body := style(SnakeColor(f.State.Palette), bg)
	for i, p := range f.State.Snake {
		if i == 0 {
			r.setCell(p, '█', style(HeadColor(f.State.Palette), bg).Bold(true))
			continue
		}
		r.setCell(p, '█', body)
	}

	col, row := cellOrigin(f.State.Apple)
	r.screen.SetContent(col, row, '●', nil, style(AppleColor, bg))
	r.screen.SetContent(col+1, row, ' ', nil, empty)

	if lines, ok := Overlay(f); ok {
		r.drawOverlay(f.Grid, lines)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) setCell(p types.Point, ch rune, st tcell.Style) {
	col, row := cellOrigin(p)
	for i := 0; i < cellWidth; i++ {
		r.screen.SetContent(col+i, row, ch, nil, st)
	}
}

func (r *TerminalRenderer) drawBorder(g types.Grid) {
	st := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(BorderColor.R), int32(BorderColor.G), int32(BorderColor.B)))
	right := 1 + g.Width*cellWidth
	bottom := boardTop + 1 + g.Height

	for x := 1; x < right; x++ {
		r.screen.SetContent(x, boardTop, '─', nil, st)
		r.screen.SetContent(x, bottom, '─', nil, st)
	}
	for y := boardTop + 1; y < bottom; y++ {
		r.screen.SetContent(0, y, '│', nil, st)
		r.screen.SetContent(right, y, '│', nil, st)
	}
	r.screen.SetContent(0, boardTop, '┌', nil, st)
	r.screen.SetContent(right, boardTop, '┐', nil, st)
	r.screen.SetContent(0, bottom, '└', nil, st)
	r.screen.SetContent(right, bottom, '┘', nil, st)
}

func (r *TerminalRenderer) drawOverlay(g types.Grid, lines []string) {
	st := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(TextColor.R), int32(TextColor.G), int32(TextColor.B))).
		Background(tcell.ColorBlack)

	centreX := 1 + g.Width*cellWidth/2
	top := boardTop + 1 + g.Height/2 - len(lines)/2
	for i, line := range lines {
		text := " " + line + " "
		st := st
		if i == 0 {
			st = st.Bold(true)
		}
		r.drawText(centreX-len([]rune(text))/2, top+i, text, st)
	}
}

func (r *TerminalRenderer) drawText(x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, st)
	}
}

// Intents pumps key events from the screen until ctx is done or the screen
// is finalised. Resizes come through as IntentNone so the loop redraws.
func (r *TerminalRenderer) Intents(ctx context.Context, mapper *input.Mapper) <-chan game.Intent {
	out := make(chan game.Intent, 16)
	go func() {
		defer close(out)
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}

			intent := game.IntentNone
			switch ev := ev.(type) {
			case *tcell.EventKey:
				intent = mapper.MapTcellEvent(ev)
				if intent == game.IntentNone {
					continue
				}
			case *tcell.EventResize:
				r.screen.Sync()
			default:
				continue
			}

			select {
			case out <- intent:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
