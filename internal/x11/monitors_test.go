package x11

import "testing"

func TestOutputScale(t *testing.T) {
	tests := []struct {
		name   string
		pixels int
		mm     int
		want   float64
	}{
		{"standard 96dpi", 1920, 508, 1.0},
		{"hidpi laptop", 2880, 310, 2.5},
		{"4k 27 inch", 3840, 597, 1.75},
		{"slightly off 96dpi snaps to 1.0", 1920, 520, 1.0},
		{"low dpi floors at 1.0", 1024, 400, 1.0},
		{"no physical size", 1920, 0, 1.0},
		{"no pixel size", 0, 508, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputScale(tt.pixels, tt.mm); got != tt.want {
				t.Errorf("outputScale(%d, %d) = %v, want %v", tt.pixels, tt.mm, got, tt.want)
			}
		})
	}
}
