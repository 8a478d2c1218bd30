package ui

import (
	"strings"
	"testing"

	"dawang/internal/emotion"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("DAWANG_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when DAWANG_DARK_MODE=1")
	}

	t.Setenv("DAWANG_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when DAWANG_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for COLORFGBG=15;0")
	}
}

func TestThemeByName(t *testing.T) {
	if !ThemeByName("dark").IsDark {
		t.Errorf("ThemeByName(dark) should be dark")
	}
	if ThemeByName("Light").IsDark {
		t.Errorf("ThemeByName(Light) should be light")
	}
}

func TestMascotFaces(t *testing.T) {
	s := NewStyles(LightTheme())
	seen := map[string]bool{}
	for _, m := range []emotion.Mood{emotion.Neutral, emotion.Joy, emotion.Embarrassed, emotion.Proud} {
		face := Mascot(s, m)
		if face == "" {
			t.Fatalf("empty face for %s", m)
		}
		if seen[face] {
			t.Errorf("face for %s is shared with another mood", m)
		}
		seen[face] = true
	}
	if !strings.Contains(Mascot(s, emotion.Mood("??")), "•ᴥ•") {
		t.Errorf("unknown mood should fall back to the neutral face")
	}
}
