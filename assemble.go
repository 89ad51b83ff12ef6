package svgdraw

import (
	"fmt"
	"math"
	"regexp"
)

const (
	defaultTolerance = 0.05
	boundsPadding    = 0.1
)

// Build converts an SVG document into the target drawing document using the
// default rasterizer, RasterizeSVG. It is the package's main entry point;
// see BuildWithRasterizer for swapping in an alternate fill-preview backend.
func Build(svgSource string, paletteHex []string, palette Palette, tolerance float64) (Document, ColorMapping, []string, error) {
	return BuildWithRasterizer(svgSource, paletteHex, palette, tolerance, RasterizeSVG)
}

// BuildWithRasterizer is Build with the fill-preview rasterizer as a
// parameter, so a caller on a platform where golang.org/x/image/vector isn't
// the right fit (or who already has a faster native renderer) can supply
// their own RasterizerFunc without forking the rest of the pipeline. Callers
// supply the SVG source, an optional palette override (hex strings and their
// parallel palette-color records), and an optional cubic/arc subdivision
// tolerance. A malformed input (no root <svg>) fails outright; every other
// irregularity degrades locally and is surfaced as a warning alongside a
// still-complete document.
func BuildWithRasterizer(svgSource string, paletteHex []string, palette Palette, tolerance float64, rasterize RasterizerFunc) (Document, ColorMapping, []string, error) {
	if len(paletteHex) == 0 {
		paletteHex, palette = DefaultPaletteHex, DefaultPalette
	} else if len(palette) != len(paletteHex) {
		palette = make(Palette, len(paletteHex))
		for i, hex := range paletteHex {
			palette[i] = paletteColorFromHex(hex)
		}
	}
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}

	parsed, err := Flatten(svgSource)
	if err != nil {
		return Document{}, nil, nil, fmt.Errorf("svgdraw: %w", err)
	}

	mapping, warnings := BuildColorMapping(parsed.Colors, paletteHex)
	warnings = append(warnings, parsed.Warnings...)

	var segments []Segment
	strokeWidths := map[float64]bool{}
	for _, leaf := range parsed.Leaves {
		segments = append(segments, ConvertLeaf(leaf, mapping, parsed.ViewBox, tolerance)...)
		if leaf.Fill != NoPaint || leaf.Stroke != NoPaint {
			strokeWidths[leaf.StrokeWidth] = true
		}
	}
	if len(strokeWidths) > 1 {
		warnings = append(warnings, "input uses multiple stroke widths; the converter does not preserve stroke width")
	}

	bounds := computeBounds(segments)

	var fillPng string
	if len(segments) > 0 {
		w := int(math.Ceil((bounds.MaxX - bounds.MinX) * fillPixelsPerUnit))
		h := int(math.Ceil((bounds.MaxY - bounds.MinY) * fillPixelsPerUnit))

		recolored := recolorSVG(svgSource, mapping)
		var rasterErr error
		fillPng, rasterErr = rasterize(recolored, w, h)
		if rasterErr != nil {
			warnings = append(warnings, "rasterizer failed: "+rasterErr.Error())
			fillPng = ""
		}
	}

	doc := Document{
		Version:           documentVersion,
		Scale:             drawingScale,
		GridSize:          gridSize,
		FillPixelsPerUnit: fillPixelsPerUnit,
		Colors:            palette,
		Layers: []Layer{{
			Title:     "Imported",
			ID:        newLayerID(),
			IsVisible: true,
			IsBitmap:  false,
			Frames: []Frame{{
				IsLinked:        false,
				PathDataList:    segments,
				FillImageBounds: bounds,
				FillPng:         fillPng,
			}},
		}},
	}
	return doc, mapping, warnings, nil
}

// computeBounds scans every emitted segment's endpoints and bend point,
// padding by boundsPadding on each side. With no segments it falls back to
// a fixed (-10,10,-10,10) box rather than an empty or degenerate rectangle.
func computeBounds(segments []Segment) Bounds {
	if len(segments) == 0 {
		return Bounds{MinX: -drawingScale, MaxX: drawingScale, MinY: -drawingScale, MaxY: drawingScale}
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	consider := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, seg := range segments {
		consider(seg.P[0], seg.P[1])
		consider(seg.P[2], seg.P[3])
		if seg.BP != nil {
			consider(seg.BP.X, seg.BP.Y)
		}
	}
	return Bounds{
		MinX: minX - boundsPadding,
		MaxX: maxX + boundsPadding,
		MinY: minY - boundsPadding,
		MaxY: maxY + boundsPadding,
	}
}

// recolorSVG replaces every mapped input hex color with its snapped palette
// hex, case-insensitively, across the raw SVG text. This is the cheapest
// faithful way to hand the rasterizer a document that already reflects the
// palette snap, without re-serializing the parsed tree.
func recolorSVG(svgSource string, mapping ColorMapping) string {
	out := svgSource
	for hex, entry := range mapping {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(hex))
		out = re.ReplaceAllString(out, entry.Hex)
	}
	return out
}
