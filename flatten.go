package svgdraw

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// ParsedLeaf is a single SVG leaf element reduced to a path `d` string plus
// its resolved paint and accumulated transform.
type ParsedLeaf struct {
	D           string
	Fill        string // normalized hex, or NoPaint
	Stroke      string // normalized hex, or NoPaint
	StrokeWidth float64
	Transform   Matrix
}

// ParsedSVG is the result of flattening an SVG document: its viewBox, a flat
// ordered list of leaves, the set of distinct colors they use, and any
// warnings accumulated along the way.
type ParsedSVG struct {
	ViewBox  [4]float64
	Leaves   []ParsedLeaf
	Colors   []string
	Warnings []string
}

// xmlNode is a minimal in-memory XML tree, built once from the lexer so the
// flattener can walk it recursively the way the spec describes.
type xmlNode struct {
	Tag      string
	Attrs    map[string]string
	Children []*xmlNode
}

func (n *xmlNode) attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

func parseXMLTree(svgSource string) (*xmlNode, error) {
	l := xml.NewLexer(parse.NewInputString(svgSource))
	root := &xmlNode{Tag: "", Attrs: map[string]string{}}
	stack := []*xmlNode{root}

	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, l.Err()
			}
			return root, nil
		case xml.StartTagToken:
			tag := string(data[1:])
			node := &xmlNode{Tag: tag, Attrs: map[string]string{}}
			var tt2 xml.TokenType
			for {
				tt2, _ = l.Next()
				if tt2 != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if len(val) >= 2 {
					val = val[1 : len(val)-1]
				}
				node.Attrs[string(l.Text())] = string(val)
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			if tt2 != xml.StartTagCloseVoidToken {
				stack = append(stack, node)
			}
		case xml.EndTagToken:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func findFirstChild(n *xmlNode, tag string) *xmlNode {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

var styleFillRe = regexp.MustCompile(`fill\s*:\s*([^;]+)`)
var styleStrokeRe = regexp.MustCompile(`stroke\s*:\s*([^;]+)`)
var styleStopColorRe = regexp.MustCompile(`stop-color\s*:\s*([^;]+)`)

func scanStyle(re *regexp.Regexp, style string) (string, bool) {
	m := re.FindStringSubmatch(style)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Flatten walks an SVG document and produces a flat list of leaf path
// elements with accumulated transform and resolved paint. It fails when the
// XML lexer reports an error or when no root <svg> element is present.
func Flatten(svgSource string) (*ParsedSVG, error) {
	root, err := parseXMLTree(svgSource)
	if err != nil {
		return nil, err
	}
	svgNode := findFirstChild(root, "svg")
	if svgNode == nil {
		return nil, fmt.Errorf("malformed input: no root svg element found")
	}

	result := &ParsedSVG{}
	result.ViewBox = readViewBox(svgNode)

	defs := map[string]string{} // gradient id -> first stop color (hex)
	collectGradientDefs(svgNode, defs)

	colorSet := map[string]bool{}
	w := &walker{result: result, defs: defs, colorSet: colorSet}
	w.walkChildren(svgNode.Children, Identity, "#000000", NoPaint, 1.0)

	for c := range colorSet {
		result.Colors = append(result.Colors, c)
	}
	result.Warnings = append(result.Warnings, w.warnings...)
	return result, nil
}

func readViewBox(svgNode *xmlNode) [4]float64 {
	if vb, ok := svgNode.attr("viewBox"); ok {
		fields := strings.Fields(strings.ReplaceAll(vb, ",", " "))
		if len(fields) == 4 {
			var v [4]float64
			ok := true
			for i, f := range fields {
				n, err := strconv.ParseFloat(f, 64)
				if err != nil {
					ok = false
					break
				}
				v[i] = n
			}
			if ok && v[2] > 0 && v[3] > 0 {
				return v
			}
		}
	}
	width := parseDimensionOr(svgNode, "width", 100.0)
	height := parseDimensionOr(svgNode, "height", 100.0)
	return [4]float64{0, 0, width, height}
}

func parseDimensionOr(n *xmlNode, key string, fallback float64) float64 {
	v, ok := n.attr(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return fallback
	}
	return f
}

var skippedContainerTags = map[string]bool{
	"defs": true, "clipPath": true, "mask": true,
	"linearGradient": true, "radialGradient": true,
}

func collectGradientDefs(n *xmlNode, defs map[string]string) {
	for _, c := range n.Children {
		if c.Tag == "linearGradient" || c.Tag == "radialGradient" {
			if id, ok := c.attr("id"); ok {
				if stop := findFirstChild(c, "stop"); stop != nil {
					defs[id] = resolveStopColor(stop)
				}
			}
		}
		collectGradientDefs(c, defs)
	}
}

func resolveStopColor(stop *xmlNode) string {
	if style, ok := stop.attr("style"); ok {
		if v, found := scanStyle(styleStopColorRe, style); found {
			return NormalizeColor(v)
		}
	}
	if v, ok := stop.attr("stop-color"); ok {
		return NormalizeColor(v)
	}
	return NoPaint
}

type walker struct {
	result   *ParsedSVG
	defs     map[string]string
	colorSet map[string]bool
	warnings []string
}

func (w *walker) warn(msg string) {
	w.warnings = append(w.warnings, msg)
}

func (w *walker) noteColor(hex string) {
	if hex != NoPaint {
		w.colorSet[hex] = true
	}
}

// walkChildren recurses through nodes, threading the accumulated transform
// and inherited fill/stroke/stroke-width down the tree.
func (w *walker) walkChildren(nodes []*xmlNode, transform Matrix, fill, stroke string, strokeWidth float64) {
	for _, n := range nodes {
		if skippedContainerTags[n.Tag] {
			continue
		}

		nodeTransform := transform
		if t, ok := n.attr("transform"); ok {
			nodeTransform = transform.Mul(ParseTransform(t))
		}

		nodeFill, nodeStroke, nodeStrokeWidth := w.resolvePaint(n, fill, stroke, strokeWidth)

		switch n.Tag {
		case "g", "svg":
			w.walkChildren(n.Children, nodeTransform, nodeFill, nodeStroke, nodeStrokeWidth)
		case "path", "rect", "circle", "ellipse", "line", "polygon", "polyline":
			d, ok := w.shapeToPath(n)
			if !ok {
				continue
			}
			w.noteColor(nodeFill)
			w.noteColor(nodeStroke)
			w.result.Leaves = append(w.result.Leaves, ParsedLeaf{
				D:           d,
				Fill:        nodeFill,
				Stroke:      nodeStroke,
				StrokeWidth: nodeStrokeWidth,
				Transform:   nodeTransform,
			})
		default:
			// Unrecognized leaf tags are silently dropped.
		}
	}
}

// resolvePaint resolves fill, stroke, and stroke-width for one node: inline
// style wins over attribute, attribute wins over the inherited value.
func (w *walker) resolvePaint(n *xmlNode, inheritedFill, inheritedStroke string, inheritedStrokeWidth float64) (string, string, float64) {
	fill := inheritedFill
	stroke := inheritedStroke
	strokeWidth := inheritedStrokeWidth

	if v, ok := n.attr("fill"); ok {
		fill = w.resolveFillValue(v)
	}
	if v, ok := n.attr("stroke"); ok {
		stroke = NormalizeColor(v)
	}
	if v, ok := n.attr("stroke-width"); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			strokeWidth = f
		}
	}

	if style, ok := n.attr("style"); ok {
		if v, found := scanStyle(styleFillRe, style); found {
			fill = w.resolveFillValue(v)
		}
		if v, found := scanStyle(styleStrokeRe, style); found {
			stroke = NormalizeColor(v)
		}
	}

	return fill, stroke, strokeWidth
}

var urlRefRe = regexp.MustCompile(`^url\(#([^)]+)\)$`)

// resolveFillValue handles a plain color or a gradient reference, degrading
// any url(#id) gradient fill to its first stop color.
func (w *walker) resolveFillValue(v string) string {
	v = strings.TrimSpace(v)
	if m := urlRefRe.FindStringSubmatch(v); m != nil {
		w.warn("gradient fill degraded to first stop color for #" + m[1])
		if color, ok := w.defs[m[1]]; ok {
			return color
		}
		return "#000000"
	}
	return NormalizeColor(v)
}

func (w *walker) shapeToPath(n *xmlNode) (string, bool) {
	switch n.Tag {
	case "path":
		d, _ := n.attr("d")
		return d, d != ""
	case "rect":
		return rectToPath(n)
	case "circle":
		return circleToPath(n)
	case "ellipse":
		return ellipseToPath(n)
	case "line":
		return lineToPath(n)
	case "polygon":
		return polyToPath(n, true)
	case "polyline":
		return polyToPath(n, false)
	}
	return "", false
}

func attrFloat(n *xmlNode, key string, fallback float64) float64 {
	v, ok := n.attr(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return f
}

func fnum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func rectToPath(n *xmlNode) (string, bool) {
	x := attrFloat(n, "x", 0)
	y := attrFloat(n, "y", 0)
	width := attrFloat(n, "width", 0)
	height := attrFloat(n, "height", 0)
	if width <= 0 || height <= 0 {
		return "", false
	}
	rx := attrFloat(n, "rx", 0)
	ry := attrFloat(n, "ry", 0)
	if rx == 0 && ry == 0 {
		return fmt.Sprintf("M%s,%s L%s,%s L%s,%s L%s,%s Z",
			fnum(x), fnum(y),
			fnum(x+width), fnum(y),
			fnum(x+width), fnum(y+height),
			fnum(x), fnum(y+height)), true
	}
	if rx == 0 {
		rx = ry
	}
	if ry == 0 {
		ry = rx
	}
	if rx > width/2 {
		rx = width / 2
	}
	if ry > height/2 {
		ry = height / 2
	}
	return fmt.Sprintf("M%s,%s L%s,%s A%s,%s 0 0 1 %s,%s L%s,%s A%s,%s 0 0 1 %s,%s L%s,%s A%s,%s 0 0 1 %s,%s L%s,%s A%s,%s 0 0 1 %s,%s Z",
		fnum(x+rx), fnum(y),
		fnum(x+width-rx), fnum(y),
		fnum(rx), fnum(ry), fnum(x+width), fnum(y+ry),
		fnum(x+width), fnum(y+height-ry),
		fnum(rx), fnum(ry), fnum(x+width-rx), fnum(y+height),
		fnum(x+rx), fnum(y+height),
		fnum(rx), fnum(ry), fnum(x), fnum(y+height-ry),
		fnum(x), fnum(y+ry),
		fnum(rx), fnum(ry), fnum(x+rx), fnum(y),
	), true
}

func circleToPath(n *xmlNode) (string, bool) {
	cx := attrFloat(n, "cx", 0)
	cy := attrFloat(n, "cy", 0)
	r := attrFloat(n, "r", 0)
	if r <= 0 {
		return "", false
	}
	return fmt.Sprintf("M%s,%s A%s,%s 0 1 0 %s,%s A%s,%s 0 1 0 %s,%s Z",
		fnum(cx-r), fnum(cy),
		fnum(r), fnum(r), fnum(cx+r), fnum(cy),
		fnum(r), fnum(r), fnum(cx-r), fnum(cy),
	), true
}

func ellipseToPath(n *xmlNode) (string, bool) {
	cx := attrFloat(n, "cx", 0)
	cy := attrFloat(n, "cy", 0)
	rx := attrFloat(n, "rx", 0)
	ry := attrFloat(n, "ry", 0)
	if rx <= 0 || ry <= 0 {
		return "", false
	}
	return fmt.Sprintf("M%s,%s A%s,%s 0 1 0 %s,%s A%s,%s 0 1 0 %s,%s Z",
		fnum(cx-rx), fnum(cy),
		fnum(rx), fnum(ry), fnum(cx+rx), fnum(cy),
		fnum(rx), fnum(ry), fnum(cx-rx), fnum(cy),
	), true
}

func lineToPath(n *xmlNode) (string, bool) {
	x1 := attrFloat(n, "x1", 0)
	y1 := attrFloat(n, "y1", 0)
	x2 := attrFloat(n, "x2", 0)
	y2 := attrFloat(n, "y2", 0)
	return fmt.Sprintf("M%s,%s L%s,%s", fnum(x1), fnum(y1), fnum(x2), fnum(y2)), true
}

func polyToPath(n *xmlNode, closed bool) (string, bool) {
	pointsAttr, _ := n.attr("points")
	fields := strings.FieldsFunc(pointsAttr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var coords []float64
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		coords = append(coords, v)
	}
	if len(coords) < 4 {
		return "", false
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "M%s,%s", fnum(coords[0]), fnum(coords[1]))
	for i := 2; i+1 < len(coords); i += 2 {
		fmt.Fprintf(&sb, " L%s,%s", fnum(coords[i]), fnum(coords[i+1]))
	}
	if closed {
		sb.WriteString(" Z")
	}
	return sb.String(), true
}
