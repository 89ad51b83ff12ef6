package svgdraw

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestRasterizeSVGZeroSizeIsEmpty(t *testing.T) {
	out, err := RasterizeSVG(`<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`, 0, 0)
	test.That(t, err == nil)
	test.String(t, out, "")
}

func TestRasterizeSVGProducesOutput(t *testing.T) {
	out, err := RasterizeSVG(`<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`, 16, 16)
	test.That(t, err == nil)
	test.That(t, out != "")
}

func TestRasterizeSVGMalformedReturnsError(t *testing.T) {
	_, err := RasterizeSVG("<not-svg></not-svg>", 16, 16)
	test.That(t, err != nil)
}

func TestRasterizeSVGIdempotent(t *testing.T) {
	src := `<svg viewBox="0 0 10 10"><circle cx="5" cy="5" r="5" fill="#00ff00"/></svg>`
	a, err1 := RasterizeSVG(src, 20, 20)
	b, err2 := RasterizeSVG(src, 20, 20)
	test.That(t, err1 == nil)
	test.That(t, err2 == nil)
	test.String(t, a, b)
}
