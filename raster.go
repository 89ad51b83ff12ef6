package svgdraw

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/vector"
)

// RasterizerFunc renders an SVG document to a base64 PNG body at the given
// pixel dimensions, scaling the document's native viewBox to fit. It is the
// seam between the assembler and whatever rendering backend is available;
// RasterizeSVG is the default implementation, built on
// golang.org/x/image/vector rather than a separate SVG rendering library.
type RasterizerFunc func(svgSource string, w, h int) (string, error)

// RasterizeSVG is the default rasterizer: it re-flattens the given SVG
// (expected to already be recolored to palette hex values) and renders its
// fill regions directly, without going through a second SVG rendering
// library. Colors are mapped against themselves, so the palette snap is a
// no-op here and every shape keeps the color already baked into the markup.
func RasterizeSVG(svgSource string, w, h int) (out string, err error) {
	if w <= 0 || h <= 0 {
		return "", nil
	}
	parsed, err := Flatten(svgSource)
	if err != nil {
		return "", err
	}
	mapping, _ := BuildColorMapping(parsed.Colors, parsed.Colors)

	defer func() {
		if recover() != nil {
			out, err = "", nil
		}
	}()

	vw, vh := parsed.ViewBox[2], parsed.ViewBox[3]
	remap := func(p Point) Point {
		return Point{
			X: (p.X - parsed.ViewBox[0]) / vw * float64(w),
			Y: (p.Y - parsed.ViewBox[1]) / vh * float64(h),
		}
	}

	var fillSegs []Segment
	for _, leaf := range parsed.Leaves {
		if leaf.D == "" || leaf.Fill == NoPaint {
			continue
		}
		entry, ok := mapping[leaf.Fill]
		if !ok {
			continue
		}
		segs := convertGeometry(leaf.D, leaf.Transform, remap, cubicTolerance)
		color := paletteColorArray(entry.Color)
		for i := range segs {
			segs[i].F = true
			segs[i].C = color
		}
		fillSegs = append(fillSegs, segs...)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	drawFillSegments(img, fillSegs)

	var buf bytes.Buffer
	if encErr := pngEncoder.Encode(&buf, img); encErr != nil {
		return "", encErr
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// drawFillSegments groups already pixel-space segments by color and draws
// one non-zero-winding fill pass per color group.
func drawFillSegments(img *image.RGBA, segments []Segment) {
	byColor := map[[4]float64][]Segment{}
	var order [][4]float64
	for _, seg := range segments {
		if seg.C == nil {
			continue
		}
		key := *seg.C
		if _, ok := byColor[key]; !ok {
			order = append(order, key)
		}
		byColor[key] = append(byColor[key], seg)
	}

	size := img.Bounds().Size()
	for _, key := range order {
		ras := vector.NewRasterizer(size.X, size.Y)
		drawSubpaths(ras, byColor[key])
		c := color.NRGBA{
			R: uint8(key[0] * 255),
			G: uint8(key[1] * 255),
			B: uint8(key[2] * 255),
			A: uint8(key[3] * 255),
		}
		ras.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}
}

const subpathJoinEpsilon = 1e-6

// drawSubpaths feeds a color group's already pixel-space segments into the
// rasterizer as chained contours: one MoveTo starts a subpath, consecutive
// segments whose start matches the previous segment's end extend it with
// LineTo/QuadTo, and ClosePath fires once per subpath rather than once per
// segment. A segment whose start doesn't match breaks the chain and opens a
// new subpath, mirroring how a single MoveTo/many-draws/one-Close contour is
// built from a path's own command stream.
func drawSubpaths(ras *vector.Rasterizer, segments []Segment) {
	open := false
	var last Point
	for _, seg := range segments {
		start := Point{X: seg.P[0], Y: seg.P[1]}
		end := Point{X: seg.P[2], Y: seg.P[3]}
		if !open || start.Dist(last) > subpathJoinEpsilon {
			if open {
				ras.ClosePath()
			}
			ras.MoveTo(float32(start.X), float32(start.Y))
			open = true
		}
		if seg.BP != nil {
			ras.QuadTo(float32(seg.BP.X), float32(seg.BP.Y), float32(end.X), float32(end.Y))
		} else {
			ras.LineTo(float32(end.X), float32(end.Y))
		}
		last = end
	}
	if open {
		ras.ClosePath()
	}
}
