package svgdraw

import (
	"math"
	"strconv"
	"strings"
)

// Matrix is a row-major 2D affine transform (a,b,c,d,e,f) applying to a point
// (x,y) as (a*x+c*y+e, b*x+d*y+f). Be aware that composing transforms with Mul
// evaluates left-to-right: m.Mul(n) applies m first and then n, matching the
// order in which primitives are written in an SVG transform attribute.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the affine transform that leaves every point unchanged.
var Identity = Matrix{1.0, 0.0, 0.0, 1.0, 0.0, 0.0}

// Mul composes m (applied first) with q (applied second).
func (m Matrix) Mul(q Matrix) Matrix {
	return Matrix{
		A: m.A*q.A + m.B*q.C,
		B: m.A*q.B + m.B*q.D,
		C: m.C*q.A + m.D*q.C,
		D: m.C*q.B + m.D*q.D,
		E: m.E*q.A + m.F*q.C + q.E,
		F: m.E*q.B + m.F*q.D + q.F,
	}
}

// Dot applies the matrix to a point.
func (m Matrix) Dot(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{1.0, 0.0, 0.0, 1.0, x, y})
}

func (m Matrix) Scale(x, y float64) Matrix {
	return m.Mul(Matrix{x, 0.0, 0.0, y, 0.0, 0.0})
}

func (m Matrix) Rotate(deg float64) Matrix {
	sinphi, cosphi := math.Sincos(deg * math.Pi / 180.0)
	return m.Mul(Matrix{cosphi, sinphi, -sinphi, cosphi, 0.0, 0.0})
}

func (m Matrix) SkewX(deg float64) Matrix {
	return m.Mul(Matrix{1.0, 0.0, math.Tan(deg * math.Pi / 180.0), 1.0, 0.0, 0.0})
}

func (m Matrix) SkewY(deg float64) Matrix {
	return m.Mul(Matrix{1.0, math.Tan(deg * math.Pi / 180.0), 0.0, 1.0, 0.0, 0.0})
}

// RotateAbout rotates around (cx,cy): translate(cx,cy) . rotate(deg) . translate(-cx,-cy).
func (m Matrix) RotateAbout(deg, cx, cy float64) Matrix {
	return m.Translate(-cx, -cy).Rotate(deg).Translate(cx, cy)
}

func isTransformArgSep(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func parseTransformArgs(s string) []float64 {
	fields := strings.FieldsFunc(s, isTransformArgSep)
	args := make([]float64, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		args = append(args, v)
	}
	return args
}

// ParseTransform parses a CSS-style SVG transform attribute (matrix,
// translate, scale, rotate, skewX, skewY) into a single composed matrix.
// Primitives are applied in the order written, matching SVG semantics.
func ParseTransform(s string) Matrix {
	m := Identity
	i := 0
	for i < len(s) {
		open := strings.IndexByte(s[i:], '(')
		if open < 0 {
			break
		}
		open += i
		name := strings.ToLower(strings.TrimSpace(s[i:open]))
		end := strings.IndexByte(s[open:], ')')
		if end < 0 {
			break
		}
		end += open
		args := parseTransformArgs(s[open+1 : end])

		switch name {
		case "matrix":
			if len(args) == 6 {
				m = m.Mul(Matrix{args[0], args[1], args[2], args[3], args[4], args[5]})
			}
		case "translate":
			if len(args) == 1 {
				m = m.Translate(args[0], 0.0)
			} else if len(args) == 2 {
				m = m.Translate(args[0], args[1])
			}
		case "scale":
			if len(args) == 1 {
				m = m.Scale(args[0], args[0])
			} else if len(args) == 2 {
				m = m.Scale(args[0], args[1])
			}
		case "rotate":
			if len(args) == 1 {
				m = m.Rotate(args[0])
			} else if len(args) == 3 {
				m = m.RotateAbout(args[0], args[1], args[2])
			}
		case "skewx":
			if len(args) == 1 {
				m = m.SkewX(args[0])
			}
		case "skewy":
			if len(args) == 1 {
				m = m.SkewY(args[0])
			}
		}
		i = end + 1
	}
	return m
}
