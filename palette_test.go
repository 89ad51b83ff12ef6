package svgdraw

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestBuildColorMappingExactMatch(t *testing.T) {
	palette := []string{"#000000", "#ffffff", "#ff0000"}
	mapping, warnings := BuildColorMapping([]string{"#ff0000"}, palette)
	entry := mapping["#ff0000"]
	test.T(t, entry.Index, 2)
	if entry.DeltaE >= 1e-6 {
		t.Errorf("expected ΔE near 0 for exact match, got %v", entry.DeltaE)
	}
	test.T(t, len(warnings), 0)
}

func TestBuildColorMappingHighDeltaEWarns(t *testing.T) {
	palette := []string{"#000000"}
	_, warnings := BuildColorMapping([]string{"#ffffff"}, palette)
	test.T(t, len(warnings), 1)
}

func TestBuildColorMappingSkipsNoPaint(t *testing.T) {
	palette := []string{"#000000"}
	mapping, _ := BuildColorMapping([]string{NoPaint, "#000000"}, palette)
	_, ok := mapping[NoPaint]
	test.That(t, !ok)
	test.T(t, len(mapping), 1)
}

func TestDefaultPaletteSize(t *testing.T) {
	if len(DefaultPaletteHex) > 64 {
		t.Errorf("default palette exceeds 64 entries: got %d", len(DefaultPaletteHex))
	}
	test.T(t, len(DefaultPalette), len(DefaultPaletteHex))
}

func TestPaletteColorFromHex(t *testing.T) {
	c := paletteColorFromHex("#ff8000")
	test.Float(t, c.R, 1.0)
	test.Float(t, c.A, 1.0)
	if c.G <= 0 || c.G >= 1 {
		t.Errorf("expected green channel in (0,1), got %v", c.G)
	}
}
