package term

import (
	"image/color"
	"testing"
)

func TestNearestPaletteIndexExactMatch(t *testing.T) {
	idx := NearestPaletteIndex(DefaultPalette[4], DefaultPalette[:])
	if idx != 4 {
		t.Errorf("expected exact match to return index 4, got %d", idx)
	}
}

func TestNearest16PaletteIndexRed(t *testing.T) {
	almostRed := color.RGBA{R: 200, G: 40, B: 40, A: 255}
	idx := Nearest16PaletteIndex(almostRed)
	if idx != 1 && idx != 9 {
		t.Errorf("expected a red-ish slot (1 or 9), got %d", idx)
	}
}

func TestNearestPaletteIndexBlackAndWhite(t *testing.T) {
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if idx := Nearest16PaletteIndex(black); idx != 0 {
		t.Errorf("expected black to map to index 0, got %d", idx)
	}
	if idx := Nearest16PaletteIndex(white); idx != 15 && idx != 7 {
		t.Errorf("expected white to map to a white-ish slot (7 or 15), got %d", idx)
	}
}
