package svgdraw

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestMatrixIdentity(t *testing.T) {
	p := Point{3.0, -2.0}
	test.T(t, Identity.Dot(p), p)
}

func TestMatrixMulAssociative(t *testing.T) {
	a := Identity.Translate(1, 2)
	b := Identity.Rotate(30)
	c := Identity.Scale(2, 3)
	p := Point{5, -7}

	left := a.Mul(b).Mul(c).Dot(p)
	right := a.Mul(b.Mul(c)).Dot(p)
	test.Float(t, left.X, right.X)
	test.Float(t, left.Y, right.Y)
}

func TestMatrixTranslate(t *testing.T) {
	m := Identity.Translate(10, -5)
	p := m.Dot(Point{1, 1})
	test.Float(t, p.X, 11)
	test.Float(t, p.Y, -4)
}

func TestMatrixRotateAbout(t *testing.T) {
	m := Identity.RotateAbout(180, 5, 5)
	p := m.Dot(Point{5, 0})
	test.Float(t, p.X, 5.0)
	test.Float(t, p.Y, 10.0)
}

func TestParseTransformMatrix(t *testing.T) {
	m := ParseTransform("matrix(1,0,0,1,10,20)")
	p := m.Dot(Point{0, 0})
	test.Float(t, p.X, 10)
	test.Float(t, p.Y, 20)
}

func TestParseTransformMultiple(t *testing.T) {
	// translate(10,0) applies first: (1,1) -> (11,1), then scale(2): -> (22,2).
	m := ParseTransform("translate(10,0) scale(2)")
	p := m.Dot(Point{1, 1})
	test.Float(t, p.X, 22)
	test.Float(t, p.Y, 2)
}

func TestParseTransformScaleSingleArg(t *testing.T) {
	m := ParseTransform("scale(3)")
	p := m.Dot(Point{1, 2})
	test.Float(t, p.X, 3)
	test.Float(t, p.Y, 6)
}

func TestParseTransformRotateAboutCenter(t *testing.T) {
	m := ParseTransform("rotate(180,5,5)")
	p := m.Dot(Point{5, 0})
	test.Float(t, p.X, 5.0)
	test.Float(t, p.Y, 10.0)
}

func TestParseTransformSkew(t *testing.T) {
	m := ParseTransform("skewX(0)")
	test.T(t, m, Identity)
}

func TestParseTransformUnknown(t *testing.T) {
	m := ParseTransform("garbage(1,2,3)")
	test.T(t, m, Identity)
}
