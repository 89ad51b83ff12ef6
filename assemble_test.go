package svgdraw

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestBuildMalformedInput(t *testing.T) {
	_, _, _, err := Build("<not-svg></not-svg>", nil, nil, 0)
	test.That(t, err != nil)
}

func TestBuildEmptySVGFallbackBounds(t *testing.T) {
	doc, _, _, err := Build(`<svg viewBox="0 0 10 10"></svg>`, nil, nil, 0)
	test.That(t, err == nil)
	test.T(t, len(doc.Layers), 1)
	test.T(t, len(doc.Layers[0].Frames), 1)
	frame := doc.Layers[0].Frames[0]
	test.T(t, len(frame.PathDataList), 0)
	test.Float(t, frame.FillImageBounds.MinX, -drawingScale)
	test.Float(t, frame.FillImageBounds.MaxX, drawingScale)
	test.String(t, frame.FillPng, "")
}

func TestBuildRectFourSegments(t *testing.T) {
	doc, mapping, _, err := Build(`<svg viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#ff0000"/></svg>`, nil, nil, 0)
	test.That(t, err == nil)
	segs := doc.Layers[0].Frames[0].PathDataList
	test.T(t, len(segs), 4)
	for _, s := range segs {
		test.That(t, s.F)
	}
	_, ok := mapping["#ff0000"]
	test.That(t, ok)
}

func TestBuildDocumentConstants(t *testing.T) {
	doc, _, _, err := Build(`<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`, nil, nil, 0)
	test.That(t, err == nil)
	test.T(t, doc.Version, 3)
	test.Float(t, doc.Scale, drawingScale)
	test.Float(t, doc.FillPixelsPerUnit, fillPixelsPerUnit)
	test.That(t, !doc.Layers[0].IsBitmap)
	test.That(t, doc.Layers[0].IsVisible)
}

func TestBuildDefaultPaletteUsedWhenOmitted(t *testing.T) {
	doc, _, _, err := Build(`<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`, nil, nil, 0)
	test.That(t, err == nil)
	test.T(t, len(doc.Colors), len(DefaultPaletteHex))
}

func TestBuildCustomPaletteHexOnly(t *testing.T) {
	doc, mapping, _, err := Build(`<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#112233"/></svg>`,
		[]string{"#112233", "#ffffff"}, nil, 0)
	test.That(t, err == nil)
	test.T(t, len(doc.Colors), 2)
	entry := mapping["#112233"]
	test.T(t, entry.Index, 0)
}

func TestBuildUniqueLayerIDsPerCall(t *testing.T) {
	doc1, _, _, _ := Build(`<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`, nil, nil, 0)
	doc2, _, _, _ := Build(`<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`, nil, nil, 0)
	test.That(t, doc1.Layers[0].ID != doc2.Layers[0].ID)
}

func TestBuildVaryingStrokeWidthsWarn(t *testing.T) {
	src := `<svg viewBox="0 0 10 10">
		<path d="M0,0 L10,0" stroke="#000000" stroke-width="1"/>
		<path d="M0,5 L10,5" stroke="#000000" stroke-width="2"/>
	</svg>`
	_, _, warnings, err := Build(src, nil, nil, 0)
	test.That(t, err == nil)
	found := false
	for _, w := range warnings {
		if w == "input uses multiple stroke widths; the converter does not preserve stroke width" {
			found = true
		}
	}
	test.That(t, found)
}
