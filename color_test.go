package svgdraw

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestNormalizeColorHex(t *testing.T) {
	test.String(t, NormalizeColor("#FFF"), "#ffffff")
	test.String(t, NormalizeColor(" #FF0000 "), "#ff0000")
	test.String(t, NormalizeColor("#ff0000ff"), "#ff0000")
	test.String(t, NormalizeColor("#zzzzzz"), NoPaint)
}

func TestNormalizeColorNamed(t *testing.T) {
	test.String(t, NormalizeColor("Red"), "#ff0000")
	test.String(t, NormalizeColor("black"), "#000000")
}

func TestNormalizeColorNone(t *testing.T) {
	test.String(t, NormalizeColor("none"), NoPaint)
	test.String(t, NormalizeColor("transparent"), NoPaint)
	test.String(t, NormalizeColor(""), NoPaint)
	test.String(t, NormalizeColor("unknownthing"), NoPaint)
}

func TestNormalizeColorRGB(t *testing.T) {
	test.String(t, NormalizeColor("rgb(255,0,0)"), "#ff0000")
	test.String(t, NormalizeColor("rgba(0,255,0,0.5)"), "#00ff00")
}

func TestCIE94Identity(t *testing.T) {
	lab := HexToLab("#336699")
	test.Float(t, CIE94(lab, lab), 0)
}

func TestCIE94Symmetric(t *testing.T) {
	a := HexToLab("#336699")
	b := HexToLab("#ff0000")
	test.Float(t, CIE94(a, b), CIE94(b, a))
}

func TestRGBToLabWhite(t *testing.T) {
	lab := RGBToLab(255, 255, 255)
	if lab.L < 99.9 || lab.L > 100.1 {
		t.Errorf("expected L near 100, got %v", lab.L)
	}
}

func TestRGBToLabBlack(t *testing.T) {
	lab := RGBToLab(0, 0, 0)
	test.Float(t, lab.L, 0)
}
