package ui

import "gridsnake/game/types"

type RGB struct {
	R, G, B uint8
}

// Snake colours in palette order: green, blue, red, black, fuchsia, yellow.
var snakeColors = [types.SnakeColors]RGB{
	{R: 46, G: 125, B: 50},
	{R: 21, G: 101, B: 192},
	{R: 198, G: 40, B: 40},
	{R: 33, G: 33, B: 33},
	{R: 194, G: 24, B: 91},
	{R: 249, G: 168, B: 37},
}

// Background tones, one per level modulo the count
var backgrounds = [types.Backgrounds]RGB{
	{R: 232, G: 245, B: 233},
	{R: 227, G: 242, B: 253},
	{R: 255, G: 243, B: 224},
}

var (
	AppleColor  = RGB{R: 229, G: 57, B: 53}
	BorderColor = RGB{R: 97, G: 97, B: 97}
	TextColor   = RGB{R: 250, G: 250, B: 250}
)

func SnakeColor(p types.Palette) RGB {
	return snakeColors[clamp(p.Snake, len(snakeColors))]
}

func BackgroundColor(p types.Palette) RGB {
	return backgrounds[clamp(p.Background, len(backgrounds))]
}

// HeadColor brightens the body colour the way the window renderer always has
func HeadColor(p types.Palette) RGB {
	c := SnakeColor(p)
	return RGB{R: brighten(c.R), G: brighten(c.G), B: brighten(c.B)}
}

func brighten(v uint8) uint8 {
	b := float32(v)*1.3 + 20
	if b > 255 {
		return 255
	}
	return uint8(b)
}

func clamp(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}
