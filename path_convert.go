package svgdraw

import (
	"errors"
	"math"

	"github.com/tdewolff/strconv"
)

var errUnparseableNum = errors.New("svgdraw: unparseable path number")

const (
	cubicTolerance = 0.05
	cubicMaxDepth  = 8
	zCloseEpsilon  = 1e-3
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// parseNum reads one numeric argument. A command's required argument that
// isn't actually a number (garbage input) panics with errUnparseableNum,
// caught by convertGeometry's top-level recover, so a malformed `d` string
// yields no segments at all rather than whatever had been emitted so far.
func parseNum(path []byte) (float64, int) {
	i := skipCommaWhitespace(path)
	if i >= len(path) || !isNumStart(path[i]) {
		panic(errUnparseableNum)
	}
	f, n := strconv.ParseFloat(path[i:])
	return f, i + n
}

func isNumStart(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == '+' || b == '-'
}

// isPathCommand reports whether b is one of the `d` command letters this
// converter recognizes. Anything else — including other letters above 'A'
// that happen to appear in garbage input — is not a command byte.
func isPathCommand(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Q', 'q', 'T', 't',
		'C', 'c', 'S', 's', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// viewBoxToDrawing maps a point from the SVG document's root coordinate space
// (after the leaf's accumulated transform has already been applied) into
// drawing-unit space, per the viewBox remap.
func viewBoxToDrawing(p Point, vb [4]float64) Point {
	vw, vh := vb[2], vb[3]
	s := (2 * drawingScale) / math.Max(vw, vh)
	return Point{
		X: p.X*s - vb[0]*s - vw*s/2,
		Y: p.Y*s - vb[1]*s - vh*s/2,
	}
}

// colorSet is one independent color pass over a leaf's geometry: either the
// fill pass (f=true) or the stroke pass (f=false), or a single uncolored
// pass when the leaf has neither.
type colorSet struct {
	color *[4]float64
	f     bool
}

func resolveColorSets(leaf ParsedLeaf, mapping ColorMapping) []colorSet {
	var sets []colorSet
	if leaf.Fill != NoPaint {
		if entry, ok := mapping[leaf.Fill]; ok {
			sets = append(sets, colorSet{color: paletteColorArray(entry.Color), f: true})
		}
	}
	if leaf.Stroke != NoPaint {
		if entry, ok := mapping[leaf.Stroke]; ok {
			sets = append(sets, colorSet{color: paletteColorArray(entry.Color), f: false})
		}
	}
	if len(sets) == 0 {
		sets = append(sets, colorSet{color: nil, f: false})
	}
	return sets
}

func paletteColorArray(c PaletteColor) *[4]float64 {
	arr := [4]float64{c.R, c.G, c.B, c.A}
	return &arr
}

// ConvertLeaf transcribes one parsed leaf's `d` command stream into target
// path segments, running one independent geometry pass per resolved color
// set (fill pass before stroke pass). An unparseable or empty `d` string
// yields no segments and no error: degradation is local to the leaf.
func ConvertLeaf(leaf ParsedLeaf, mapping ColorMapping, viewBox [4]float64, tolerance float64) []Segment {
	if leaf.D == "" {
		return nil
	}
	remap := func(p Point) Point { return viewBoxToDrawing(p, viewBox) }
	var out []Segment
	for _, cs := range resolveColorSets(leaf, mapping) {
		segs := convertGeometry(leaf.D, leaf.Transform, remap, tolerance)
		for i := range segs {
			segs[i].F = cs.f
			segs[i].C = cs.color
		}
		out = append(out, segs...)
	}
	return out
}

type pathConv struct {
	transform Matrix
	remap     func(Point) Point
	tolerance float64
	segments  []Segment
}

func (c *pathConv) toDrawing(p Point) Point {
	return c.remap(c.transform.Dot(p))
}

func (c *pathConv) emitLine(p0, p1 Point) {
	a, b := c.toDrawing(p0), c.toDrawing(p1)
	c.segments = append(c.segments, Segment{P: [4]float64{a.X, a.Y, b.X, b.Y}, S: StyleLine})
}

func (c *pathConv) emitQuad(p0, ctrl, p1 Point) {
	a, b := c.toDrawing(p0), c.toDrawing(p1)
	bp := c.toDrawing(ctrl)
	c.segments = append(c.segments, Segment{
		P:  [4]float64{a.X, a.Y, b.X, b.Y},
		S:  StyleLine,
		BP: &BendPoint{X: bp.X, Y: bp.Y},
	})
}

// emitCubic performs the adaptive cubic-to-quadratic reduction described by
// the spec: a single best-fit quadratic control point, accepted when the
// midpoint error (measured in drawing units) is within tolerance or the
// recursion has gone eight levels deep, otherwise de Casteljau split at
// t=0.5 and recurse on each half in traversal order.
func (c *pathConv) emitCubic(p0, p1, p2, p3 Point, depth int) {
	q := p1.Mul(3).Sub(p0).Add(p2.Mul(3).Sub(p3)).Mul(0.25)

	cmid := p0.Mul(0.125).Add(p1.Mul(0.375)).Add(p2.Mul(0.375)).Add(p3.Mul(0.125))
	qmid := p0.Mul(0.25).Add(q.Mul(0.5)).Add(p3.Mul(0.25))

	errDU := c.toDrawing(cmid).Dist(c.toDrawing(qmid))
	if errDU <= c.tolerance || depth >= cubicMaxDepth {
		c.emitQuad(p0, q, p3)
		return
	}

	p01 := p0.Add(p1).Mul(0.5)
	p12 := p1.Add(p2).Mul(0.5)
	p23 := p2.Add(p3).Mul(0.5)
	p012 := p01.Add(p12).Mul(0.5)
	p123 := p12.Add(p23).Mul(0.5)
	mid := p012.Add(p123).Mul(0.5)

	c.emitCubic(p0, p01, p012, mid, depth+1)
	c.emitCubic(mid, p123, p23, p3, depth+1)
}

// emitArc performs the endpoint-to-center conversion and splits the arc into
// quadrant-sized sub-arcs, each approximated by a single quadratic whose
// control point sits at the intersection of the ellipse tangents at the
// sub-arc's two endpoints.
func (c *pathConv) emitArc(p0 Point, rx, ry, phiDeg float64, large, sweep bool, p1 Point) {
	if rx == 0 || ry == 0 {
		c.emitLine(p0, p1)
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := phiDeg * math.Pi / 180.0
	sinPhi, cosPhi := math.Sincos(phi)

	dx2, dy2 := (p0.X-p1.X)/2.0, (p0.Y-p1.Y)/2.0
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		scale := math.Sqrt(lambda)
		rx *= scale
		ry *= scale
	}

	sign := 1.0
	if large == sweep {
		sign = -1.0
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den != 0 && num > 0 {
		co = sign * math.Sqrt(num/den)
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+p1.X)/2.0
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+p1.Y)/2.0

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		lenProd := math.Sqrt((ux*ux+uy*uy)*(vx*vx+vy*vy))
		cosA := dot / lenProd
		if cosA > 1 {
			cosA = 1
		} else if cosA < -1 {
			cosA = -1
		}
		a := math.Acos(cosA)
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}

	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dtheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	nSub := int(math.Ceil(math.Abs(dtheta) / (math.Pi / 2)))
	if nSub < 1 {
		nSub = 1
	}

	ellipsePoint := func(theta float64) Point {
		st, ct := math.Sincos(theta)
		return Point{
			X: cx + cosPhi*rx*ct - sinPhi*ry*st,
			Y: cy + sinPhi*rx*ct + cosPhi*ry*st,
		}
	}

	step := dtheta / float64(nSub)
	for k := 0; k < nSub; k++ {
		thetaA := theta1 + float64(k)*step
		thetaB := theta1 + float64(k+1)*step
		thetaM := (thetaA + thetaB) / 2.0
		h := (thetaB - thetaA) / 2.0
		cosH := math.Cos(h)

		sm, cm := math.Sincos(thetaM)
		ctrl := Point{
			X: cx + cosPhi*(rx*cm/cosH) - sinPhi*(ry*sm/cosH),
			Y: cy + sinPhi*(rx*cm/cosH) + cosPhi*(ry*sm/cosH),
		}
		a := ellipsePoint(thetaA)
		b := ellipsePoint(thetaB)
		c.emitQuad(a, ctrl, b)
	}
}

// convertGeometry interprets one `d` command stream, entirely in the path's
// local SVG coordinate space, transforming each emitted endpoint/bend point
// into drawing units only at the point of segment construction.
func convertGeometry(d string, transform Matrix, remap func(Point) Point, tolerance float64) (segs []Segment) {
	conv := &pathConv{transform: transform, remap: remap, tolerance: tolerance}

	// An unparseable `d` string yields no segments at all, not whatever had
	// been emitted before the parse failure.
	defer func() {
		if recover() != nil {
			segs = nil
		}
	}()

	path := []byte(d)
	var prevCmd byte
	var cur, subStart Point
	i := 0
	for i < len(path) {
		i += skipCommaWhitespace(path[i:])
		if i >= len(path) {
			break
		}
		cmd := prevCmd
		if isPathCommand(path[i]) {
			cmd = path[i]
			i++
		} else if cmd == 'Z' || cmd == 'z' {
			// Z takes no arguments, so anything after it that isn't a new
			// command is malformed.
			panic(errUnparseableNum)
		}

		switch cmd {
		case 'M', 'm':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			if cmd == 'm' {
				a += cur.X
				b += cur.Y
			}
			cur = Point{a, b}
			subStart = cur
		case 'L', 'l':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			if cmd == 'l' {
				a += cur.X
				b += cur.Y
			}
			next := Point{a, b}
			conv.emitLine(cur, next)
			cur = next
		case 'H', 'h':
			a, n := parseNum(path[i:])
			i += n
			if cmd == 'h' {
				a += cur.X
			}
			next := Point{a, cur.Y}
			conv.emitLine(cur, next)
			cur = next
		case 'V', 'v':
			b, n := parseNum(path[i:])
			i += n
			if cmd == 'v' {
				b += cur.Y
			}
			next := Point{cur.X, b}
			conv.emitLine(cur, next)
			cur = next
		case 'Q', 'q':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			cx, n := parseNum(path[i:])
			i += n
			cy, n := parseNum(path[i:])
			i += n
			if cmd == 'q' {
				a += cur.X
				b += cur.Y
				cx += cur.X
				cy += cur.Y
			}
			ctrl := Point{a, b}
			next := Point{cx, cy}
			conv.emitQuad(cur, ctrl, next)
			cur = next
		case 'T', 't':
			// Accepted fidelity loss: the smooth-quadratic reflection is
			// not tracked, so this becomes a straight line.
			cx, n := parseNum(path[i:])
			i += n
			cy, n := parseNum(path[i:])
			i += n
			if cmd == 't' {
				cx += cur.X
				cy += cur.Y
			}
			next := Point{cx, cy}
			conv.emitLine(cur, next)
			cur = next
		case 'C', 'c':
			a, n := parseNum(path[i:])
			i += n
			b, n := parseNum(path[i:])
			i += n
			cc, n := parseNum(path[i:])
			i += n
			dd, n := parseNum(path[i:])
			i += n
			ex, n := parseNum(path[i:])
			i += n
			ey, n := parseNum(path[i:])
			i += n
			if cmd == 'c' {
				a += cur.X
				b += cur.Y
				cc += cur.X
				dd += cur.Y
				ex += cur.X
				ey += cur.Y
			}
			p1, p2, p3 := Point{a, b}, Point{cc, dd}, Point{ex, ey}
			conv.emitCubic(cur, p1, p2, p3, 0)
			cur = p3
		case 'S', 's':
			// Accepted fidelity loss: cp1 is always the current point,
			// not the reflection of the previous cubic's cp2.
			cc, n := parseNum(path[i:])
			i += n
			dd, n := parseNum(path[i:])
			i += n
			ex, n := parseNum(path[i:])
			i += n
			ey, n := parseNum(path[i:])
			i += n
			if cmd == 's' {
				cc += cur.X
				dd += cur.Y
				ex += cur.X
				ey += cur.Y
			}
			p2, p3 := Point{cc, dd}, Point{ex, ey}
			conv.emitCubic(cur, cur, p2, p3, 0)
			cur = p3
		case 'A', 'a':
			rx, n := parseNum(path[i:])
			i += n
			ry, n := parseNum(path[i:])
			i += n
			rot, n := parseNum(path[i:])
			i += n
			largeF, n := parseNum(path[i:])
			i += n
			sweepF, n := parseNum(path[i:])
			i += n
			ex, n := parseNum(path[i:])
			i += n
			ey, n := parseNum(path[i:])
			i += n
			if cmd == 'a' {
				ex += cur.X
				ey += cur.Y
			}
			large := math.Abs(largeF-1.0) < 1e-9
			sweep := math.Abs(sweepF-1.0) < 1e-9
			next := Point{ex, ey}
			conv.emitArc(cur, rx, ry, rot, large, sweep, next)
			cur = next
		case 'Z', 'z':
			if math.Abs(cur.X-subStart.X) > zCloseEpsilon || math.Abs(cur.Y-subStart.Y) > zCloseEpsilon {
				conv.emitLine(cur, subStart)
			}
			cur = subStart
		default:
			return conv.segments
		}
		prevCmd = cmd
	}
	return conv.segments
}
