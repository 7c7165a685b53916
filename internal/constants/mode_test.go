package constants

import "testing"

func TestRenderModeValid(t *testing.T) {
	tests := []struct {
		mode RenderMode
		want bool
	}{
		{RenderNone, true},
		{RenderTerminal, true},
		{RenderAuto, true},
		{RenderMode(""), false},
		{RenderMode("oled"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if got := tt.mode.Valid(); got != tt.want {
				t.Errorf("RenderMode(%q).Valid() = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestGridGeometry(t *testing.T) {
	if GridWidth != 128 || GridHeight != 56 {
		t.Errorf("grid = %dx%d, want 128x56", GridWidth, GridHeight)
	}
}
