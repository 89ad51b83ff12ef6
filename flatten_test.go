package svgdraw

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestFlattenMalformedInput(t *testing.T) {
	_, err := Flatten("<not-svg></not-svg>")
	test.That(t, err != nil)
}

func TestFlattenEmptyBody(t *testing.T) {
	parsed, err := Flatten(`<svg viewBox="0 0 10 10"></svg>`)
	test.That(t, err == nil)
	test.T(t, len(parsed.Leaves), 0)
}

func TestFlattenDefsOnly(t *testing.T) {
	parsed, err := Flatten(`<svg viewBox="0 0 10 10"><defs><rect x="0" y="0" width="5" height="5"/></defs></svg>`)
	test.That(t, err == nil)
	test.T(t, len(parsed.Leaves), 0)
}

func TestFlattenRect(t *testing.T) {
	parsed, err := Flatten(`<svg viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#ff0000"/></svg>`)
	test.That(t, err == nil)
	test.T(t, len(parsed.Leaves), 1)
	test.String(t, parsed.Leaves[0].Fill, "#ff0000")
	test.String(t, parsed.Leaves[0].Stroke, NoPaint)
}

func TestFlattenDefaultFillStroke(t *testing.T) {
	parsed, err := Flatten(`<svg viewBox="0 0 10 10"><path d="M0,0 L10,10"/></svg>`)
	test.That(t, err == nil)
	test.String(t, parsed.Leaves[0].Fill, "#000000")
	test.String(t, parsed.Leaves[0].Stroke, NoPaint)
}

func TestFlattenNestedTransform(t *testing.T) {
	parsed, err := Flatten(`<svg viewBox="0 0 100 100"><g transform="translate(50,50)"><rect x="-10" y="-10" width="20" height="20" fill="#00ff00"/></g></svg>`)
	test.That(t, err == nil)
	test.T(t, len(parsed.Leaves), 1)
	p := parsed.Leaves[0].Transform.Dot(Point{0, 0})
	test.Float(t, p.X, 50)
	test.Float(t, p.Y, 50)
}

func TestFlattenGradientDegrades(t *testing.T) {
	src := `<svg viewBox="0 0 100 100"><defs><linearGradient id="g"><stop stop-color="#ff0000"/><stop stop-color="#0000ff"/></linearGradient></defs><rect x="0" y="0" width="100" height="100" fill="url(#g)"/></svg>`
	parsed, err := Flatten(src)
	test.That(t, err == nil)
	test.String(t, parsed.Leaves[0].Fill, "#ff0000")
	test.That(t, len(parsed.Warnings) > 0)
}

func TestFlattenPolygonAndPolyline(t *testing.T) {
	parsed, err := Flatten(`<svg viewBox="0 0 10 10"><polygon points="0,0 5,0 5,5"/><polyline points="0,0 5,0 5,5"/></svg>`)
	test.That(t, err == nil)
	test.T(t, len(parsed.Leaves), 2)
}

func TestFlattenCircleStrokeOnly(t *testing.T) {
	parsed, err := Flatten(`<svg viewBox="-5 -5 10 10"><circle cx="0" cy="0" r="5" fill="none" stroke="#000000"/></svg>`)
	test.That(t, err == nil)
	test.T(t, len(parsed.Leaves), 1)
	test.String(t, parsed.Leaves[0].Fill, NoPaint)
	test.String(t, parsed.Leaves[0].Stroke, "#000000")
}

func TestFlattenInlineStyleWinsOverAttribute(t *testing.T) {
	parsed, err := Flatten(`<svg viewBox="0 0 10 10"><rect x="0" y="0" width="10" height="10" fill="#ff0000" style="fill:#00ff00"/></svg>`)
	test.That(t, err == nil)
	test.String(t, parsed.Leaves[0].Fill, "#00ff00")
}
