// Package hotkey listens for global key combinations through an OS-level
// hook. Callbacks fire on the hook goroutine; callers that touch the engine
// must marshal through its Dispatch.
package hotkey

import (
	"fmt"
	"log"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
)

// Binding pairs a combo string like "Ctrl+Alt+M" with its callback.
type Binding struct {
	Combo    string
	Callback func()
}

type keyState struct {
	name     string
	rawcodes []uint16
	pressed  bool
}

type comboState struct {
	combo    string
	callback func()
	keys     []keyState
}

// Listen registers the bindings and starts the global hook in a background
// goroutine. Invalid combos are logged and skipped.
func Listen(bindings []Binding) {
	var combos []*comboState
	for _, b := range bindings {
		cs := buildComboState(b)
		if cs == nil {
			continue
		}
		combos = append(combos, cs)
		log.Printf("Hotkey registered: %s", b.Combo)
	}
	if len(combos) == 0 {
		log.Printf("ERROR: No valid hotkey bindings, global hotkeys disabled")
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel")
			return
		}

		var mu sync.Mutex
		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown:
				mu.Lock()
				var fired []func()
				for _, cs := range combos {
					if cs.keyDown(ev.Rawcode) {
						fired = append(fired, cs.callback)
					}
				}
				mu.Unlock()
				for _, fn := range fired {
					if fn != nil {
						fn()
					}
				}
			case gohook.KeyUp:
				mu.Lock()
				for _, cs := range combos {
					cs.keyUp(ev.Rawcode)
				}
				mu.Unlock()
			}
		}
		log.Printf("Hotkey event channel closed")
	}()
}

func buildComboState(b Binding) *comboState {
	cs := &comboState{combo: b.Combo, callback: b.Callback}
	for _, keyName := range parseHotkey(b.Combo) {
		rawcodes := keyNameToRawcodes(keyName)
		if len(rawcodes) == 0 {
			log.Printf("ERROR: Cannot map key %q in hotkey %q, binding skipped", keyName, b.Combo)
			return nil
		}
		cs.keys = append(cs.keys, keyState{name: keyName, rawcodes: rawcodes})
	}
	if len(cs.keys) == 0 {
		log.Printf("ERROR: Empty hotkey binding %q", b.Combo)
		return nil
	}
	return cs
}

// keyDown marks a matching key pressed and reports whether the whole combo
// is now down. Detection resets the combo so holding the keys fires once.
func (cs *comboState) keyDown(rawcode uint16) bool {
	matched := false
	for i := range cs.keys {
		for _, rc := range cs.keys[i].rawcodes {
			if rawcode == rc {
				cs.keys[i].pressed = true
				matched = true
				break
			}
		}
	}
	if !matched {
		return false
	}
	for i := range cs.keys {
		if !cs.keys[i].pressed {
			return false
		}
	}
	log.Printf("Hotkey activated: %s", cs.combo)
	for i := range cs.keys {
		cs.keys[i].pressed = false
	}
	return true
}

func (cs *comboState) keyUp(rawcode uint16) {
	for i := range cs.keys {
		for _, rc := range cs.keys[i].rawcodes {
			if rawcode == rc {
				cs.keys[i].pressed = false
				break
			}
		}
	}
}

// parseHotkey converts a combo string like "Ctrl+Alt+m" to normalized key names.
func parseHotkey(combo string) []string {
	parts := strings.Split(strings.ToLower(combo), "+")
	var keys []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch part {
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}

// rawcodeTable maps key names to Windows virtual key codes; modifiers list
// both left and right variants.
var rawcodeTable = map[string][]uint16{
	"ctrl":  {162, 163}, // VK_LCONTROL, VK_RCONTROL
	"alt":   {164, 165}, // VK_LMENU, VK_RMENU
	"shift": {160, 161}, // VK_LSHIFT, VK_RSHIFT
	"cmd":   {91, 92},   // VK_LWIN, VK_RWIN

	"space":     {32},
	"enter":     {13},
	"return":    {13},
	"esc":       {27},
	"escape":    {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"del":       {46},
	"insert":    {45},
	"ins":       {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pgup":      {33},
	"pagedown":  {34},
	"pgdn":      {34},
	"left":      {37},
	"up":        {38},
	"right":     {39},
	"down":      {40},
}

func init() {
	// Letters A-Z (VK 65-90), digits 0-9 (VK 48-57), F1-F24 (VK 112-135).
	for c := byte('a'); c <= 'z'; c++ {
		rawcodeTable[string(c)] = []uint16{uint16(c - 'a' + 65)}
	}
	for c := byte('0'); c <= '9'; c++ {
		rawcodeTable[string(c)] = []uint16{uint16(c)}
	}
	for i := 1; i <= 24; i++ {
		rawcodeTable[fmt.Sprintf("f%d", i)] = []uint16{uint16(111 + i)}
	}
}

func keyNameToRawcodes(keyName string) []uint16 {
	keyName = strings.ToLower(strings.TrimSpace(keyName))
	if codes, ok := rawcodeTable[keyName]; ok {
		return codes
	}
	log.Printf("WARNING: Unknown key name %q, cannot map to rawcode", keyName)
	return nil
}
