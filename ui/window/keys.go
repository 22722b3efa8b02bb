package window

import (
	"unicode"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/game"
	"gridsnake/input"
)

// PollIntents drains the keys pressed since the last frame
func PollIntents(m *input.Mapper) []game.Intent {
	var intents []game.Intent
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		intent := mapKey(m, key)
		if intent != game.IntentNone {
			intents = append(intents, intent)
		}
	}
	return intents
}

func mapKey(m *input.Mapper, key int32) game.Intent {
	switch key {
	case rl.KeyUp:
		return game.IntentUp
	case rl.KeyDown:
		return game.IntentDown
	case rl.KeyLeft:
		return game.IntentLeft
	case rl.KeyRight:
		return game.IntentRight
	case rl.KeyEscape:
		return game.IntentQuit
	}
	// letter keys report their upper-case code point
	if key >= rl.KeySpace && key <= rl.KeyZ {
		return m.MapRune(unicode.ToLower(rune(key)))
	}
	return game.IntentNone
}
