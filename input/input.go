// Package input turns raw key presses into game intents.
package input

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"gridsnake/game"
)

// Bindings maps lower-case runes to intents
type Bindings map[rune]game.Intent

// DefaultBindings covers WASD, space and p for pause, q to quit
func DefaultBindings() Bindings {
	return Bindings{
		'w': game.IntentUp,
		'a': game.IntentLeft,
		's': game.IntentDown,
		'd': game.IntentRight,
		' ': game.IntentToggle,
		'p': game.IntentToggle,
		'q': game.IntentQuit,
	}
}

// ParseIntent resolves an action name as written in the config file
func ParseIntent(name string) (game.Intent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return game.IntentUp, nil
	case "down":
		return game.IntentDown, nil
	case "left":
		return game.IntentLeft, nil
	case "right":
		return game.IntentRight, nil
	case "toggle", "pause", "start":
		return game.IntentToggle, nil
	case "quit":
		return game.IntentQuit, nil
	}
	return game.IntentNone, errors.Errorf("unknown action %q", name)
}

// ParseBindings converts key -> action pairs. Keys are single characters;
// "space" is accepted for ' '.
func ParseBindings(raw map[string]string) (Bindings, error) {
	b := make(Bindings, len(raw))
	for key, action := range raw {
		intent, err := ParseIntent(action)
		if err != nil {
			return nil, errors.Wrapf(err, "binding for %q", key)
		}

		var r rune
		if strings.EqualFold(key, "space") {
			r = ' '
		} else {
			if utf8.RuneCountInString(key) != 1 {
				return nil, errors.Errorf("binding key %q must be a single character", key)
			}
			r, _ = utf8.DecodeRuneInString(key)
		}
		b[unicode.ToLower(r)] = intent
	}
	return b, nil
}

// Mapper resolves keys using the default bindings plus any extras.
type Mapper struct {
	runes Bindings
}

func NewMapper(extra Bindings) *Mapper {
	runes := DefaultBindings()
	for r, intent := range extra {
		runes[unicode.ToLower(r)] = intent
	}
	return &Mapper{runes: runes}
}

// MapRune looks a character up in the bindings; unknown runes are ignored
func (m *Mapper) MapRune(r rune) game.Intent {
	if intent, ok := m.runes[unicode.ToLower(r)]; ok {
		return intent
	}
	return game.IntentNone
}

// MapTcell maps a tcell key. Arrows always steer, Esc and Ctrl-C always quit.
func (m *Mapper) MapTcell(key tcell.Key, r rune) game.Intent {
	switch key {
	case tcell.KeyUp:
		return game.IntentUp
	case tcell.KeyDown:
		return game.IntentDown
	case tcell.KeyLeft:
		return game.IntentLeft
	case tcell.KeyRight:
		return game.IntentRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.IntentQuit
	case tcell.KeyRune:
		return m.MapRune(r)
	}
	return game.IntentNone
}

func (m *Mapper) MapTcellEvent(ev *tcell.EventKey) game.Intent {
	return m.MapTcell(ev.Key(), ev.Rune())
}
