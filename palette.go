package svgdraw

import "strconv"

// PaletteColor is a single entry in a drawing palette: four floats in [0,1]
// for red, green, blue, and alpha.
type PaletteColor struct {
	R, G, B, A float64
}

// Palette is an ordered, ≤64-entry list of colors. Indices are stable and
// referenced by the emitted document.
type Palette []PaletteColor

func paletteColorFromHex(hex string) PaletteColor {
	r, g, b := hexToRGB255(hex)
	return PaletteColor{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: 1.0,
	}
}

// ColorMapEntry records the result of snapping one input color to the
// nearest palette entry.
type ColorMapEntry struct {
	Index  int
	Hex    string
	Color  PaletteColor
	DeltaE float64
}

// ColorMapping associates a normalized input hex color to its nearest
// palette entry.
type ColorMapping map[string]ColorMapEntry

// highDeltaEThreshold is the ΔE above which a palette snap is surfaced as a
// warning: distances beyond this are an obvious, not merely perceptible,
// color shift.
const highDeltaEThreshold = 15.0

// BuildColorMapping scans, for every distinct normalized input color, the
// full palette under the CIE94 metric and keeps the closest entry (ties
// broken by the lowest index). It returns the mapping plus one warning per
// entry whose ΔE exceeds highDeltaEThreshold.
func BuildColorMapping(colors []string, hexPalette []string) (ColorMapping, []string) {
	paletteLab := make([]Lab, len(hexPalette))
	for i, hex := range hexPalette {
		paletteLab[i] = HexToLab(hex)
	}

	mapping := make(ColorMapping, len(colors))
	var warnings []string
	for _, c := range colors {
		if c == NoPaint {
			continue
		}
		inputLab := HexToLab(c)
		bestIndex := 0
		bestDeltaE := 0.0
		for i, lab := range paletteLab {
			d := CIE94(inputLab, lab)
			if i == 0 || d < bestDeltaE {
				bestIndex, bestDeltaE = i, d
			}
		}
		mapping[c] = ColorMapEntry{
			Index:  bestIndex,
			Hex:    hexPalette[bestIndex],
			Color:  paletteColorFromHex(hexPalette[bestIndex]),
			DeltaE: bestDeltaE,
		}
		if bestDeltaE > highDeltaEThreshold {
			warnings = append(warnings, "color "+c+" has no close palette match (ΔE="+formatFloat(bestDeltaE)+"), snapped to "+hexPalette[bestIndex])
		}
	}
	return mapping, warnings
}

// DefaultPaletteHex is the AAP-64-style 64-color default palette used when
// the caller supplies no override.
var DefaultPaletteHex = []string{
	"#060608", "#141013", "#3b1725", "#73172d", "#b4202a", "#df3e23", "#fa6a0a", "#f9a31b",
	"#ffd541", "#fffc40", "#d6f264", "#9cdb43", "#59c135", "#14a02e", "#1a7a3e", "#24523b",
	"#122020", "#143464", "#285cc4", "#249fde", "#20d6c7", "#a6fcdb", "#ffffff", "#fef3c0",
	"#fad6b8", "#f5a097", "#e86a73", "#bd4882", "#793a80", "#403353", "#242234", "#0c0e1e",
	"#d5c7a3", "#8f7956", "#6e5334", "#3d3332", "#1a1f2e", "#2e2f3a", "#433a50", "#633a5a",
	"#8b4b6f", "#b56278", "#d98b87", "#eab28f", "#e3c896", "#c2a565", "#9c8143", "#6f5f35",
	"#4c5a3a", "#386641", "#2c3e3b", "#1c2541", "#283d5a", "#3b5d72", "#5a8a8c", "#82b29e",
	"#b9cf9e", "#e0e4a0", "#f4e18c", "#e8b25b", "#cf7e3b", "#a85532", "#7a3932", "#4a2330",
}

// DefaultPalette is DefaultPaletteHex converted to palette colors.
var DefaultPalette = func() Palette {
	pal := make(Palette, len(DefaultPaletteHex))
	for i, hex := range DefaultPaletteHex {
		pal[i] = paletteColorFromHex(hex)
	}
	return pal
}()

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
