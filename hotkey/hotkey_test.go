package hotkey

import (
	"reflect"
	"testing"
)

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		name  string
		combo string
		want  []string
	}{
		{"simple combo", "Ctrl+Alt+M", []string{"ctrl", "alt", "m"}},
		{"with spaces", " Ctrl + Shift + F1 ", []string{"ctrl", "shift", "f1"}},
		{"win normalized to cmd", "Win+Z", []string{"cmd", "z"}},
		{"super normalized to cmd", "Super+Z", []string{"cmd", "z"}},
		{"single key", "F12", []string{"f12"}},
		{"empty parts dropped", "Ctrl++M", []string{"ctrl", "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseHotkey(tt.combo); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseHotkey(%q) = %v, want %v", tt.combo, got, tt.want)
			}
		})
	}
}

func TestKeyNameToRawcodes(t *testing.T) {
	tests := []struct {
		name    string
		keyName string
		want    []uint16
	}{
		{"ctrl has both variants", "ctrl", []uint16{162, 163}},
		{"shift has both variants", "shift", []uint16{160, 161}},
		{"letter m", "m", []uint16{77}},
		{"digit 7", "7", []uint16{55}},
		{"f1", "f1", []uint16{112}},
		{"f24", "f24", []uint16{135}},
		{"escape alias", "esc", []uint16{27}},
		{"case insensitive", "M", []uint16{77}},
		{"unknown key", "hyperkey", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyNameToRawcodes(tt.keyName); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("keyNameToRawcodes(%q) = %v, want %v", tt.keyName, got, tt.want)
			}
		})
	}
}

func TestComboDetection(t *testing.T) {
	fired := 0
	cs := buildComboState(Binding{Combo: "Ctrl+Alt+M", Callback: func() { fired++ }})
	if cs == nil {
		t.Fatal("buildComboState returned nil for a valid combo")
	}

	// Partial press does not fire.
	if cs.keyDown(162) {
		t.Error("combo fired with only ctrl down")
	}
	if cs.keyDown(164) {
		t.Error("combo fired with only ctrl+alt down")
	}
	// Completing the combo fires and resets.
	if !cs.keyDown(77) {
		t.Error("combo did not fire with all keys down")
	}
	if cs.keyDown(77) {
		t.Error("combo fired again without re-pressing the other keys")
	}

	// Right-side modifier variants count too.
	cs.keyUp(162)
	cs.keyUp(164)
	cs.keyUp(77)
	cs.keyDown(163)
	cs.keyDown(165)
	if !cs.keyDown(77) {
		t.Error("combo did not fire with right-side modifiers")
	}
}

func TestComboReleaseResetsState(t *testing.T) {
	cs := buildComboState(Binding{Combo: "Ctrl+Z"})
	if cs == nil {
		t.Fatal("buildComboState returned nil for a valid combo")
	}

	cs.keyDown(162)
	cs.keyUp(162)
	if cs.keyDown(90) {
		t.Error("combo fired after the modifier was released")
	}
}

func TestBuildComboStateRejectsUnknownKeys(t *testing.T) {
	if cs := buildComboState(Binding{Combo: "Ctrl+Hyperkey"}); cs != nil {
		t.Error("expected nil comboState for an unmappable key")
	}
	if cs := buildComboState(Binding{Combo: ""}); cs != nil {
		t.Error("expected nil comboState for an empty combo")
	}
}
