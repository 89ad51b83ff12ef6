package svgdraw

import (
	"math"
	"strconv"
	"strings"
)

// NoPaint is the distinguished "no paint" value: the result of normalizing
// "none", "transparent", or any unrecognized color string.
const NoPaint = ""

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"maroon":  "#800000",
	"olive":   "#808000",
	"lime":    "#00ff00",
	"aqua":    "#00ffff",
	"teal":    "#008080",
	"navy":    "#000080",
	"fuchsia": "#ff00ff",
}

func hexDigit(c byte) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

func expandHex3(s string) (string, bool) {
	if len(s) != 3 {
		return "", false
	}
	out := make([]byte, 0, 6)
	for _, c := range []byte(s) {
		if _, ok := hexDigit(c); !ok {
			return "", false
		}
		out = append(out, c, c)
	}
	return string(out), true
}

func validHex6(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < 6; i++ {
		if _, ok := hexDigit(s[i]); !ok {
			return false
		}
	}
	return true
}

func parseIntChannel(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	} else if n > 255 {
		n = 255
	}
	return n, true
}

// NormalizeColor reduces a color string (attribute value or inline style
// value) to a normalized 6-digit lowercase hex string, or NoPaint if the
// input is "none", "transparent", or otherwise unrecognized. Recognized
// forms: #rgb, #rrggbb, #rrggbbaa (alpha dropped), rgb(...), rgba(...)
// (alpha ignored), and a small set of named CSS colors.
func NormalizeColor(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" || s == "transparent" {
		return NoPaint
	}
	if strings.HasPrefix(s, "#") {
		body := s[1:]
		switch len(body) {
		case 3:
			if h, ok := expandHex3(body); ok {
				return "#" + h
			}
		case 6:
			if validHex6(body) {
				return "#" + body
			}
		case 8:
			if validHex6(body[:6]) {
				return "#" + body[:6]
			}
		}
		return NoPaint
	}
	if strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[5:len(s)-1], ",")
		if len(parts) != 4 {
			return NoPaint
		}
		r, ok1 := parseIntChannel(parts[0])
		g, ok2 := parseIntChannel(parts[1])
		b, ok3 := parseIntChannel(parts[2])
		if !ok1 || !ok2 || !ok3 {
			return NoPaint
		}
		return hexFromRGB(r, g, b)
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return NoPaint
		}
		r, ok1 := parseIntChannel(parts[0])
		g, ok2 := parseIntChannel(parts[1])
		b, ok3 := parseIntChannel(parts[2])
		if !ok1 || !ok2 || !ok3 {
			return NoPaint
		}
		return hexFromRGB(r, g, b)
	}
	if hex, ok := namedColors[s]; ok {
		return hex
	}
	return NoPaint
}

func hexFromRGB(r, g, b int) string {
	const digits = "0123456789abcdef"
	buf := make([]byte, 7)
	buf[0] = '#'
	buf[1], buf[2] = digits[r>>4], digits[r&0xf]
	buf[3], buf[4] = digits[g>>4], digits[g&0xf]
	buf[5], buf[6] = digits[b>>4], digits[b&0xf]
	return string(buf)
}

// hexToRGB255 splits a normalized "#rrggbb" string into 0..255 channels.
func hexToRGB255(hex string) (r, g, b int) {
	hex = strings.TrimPrefix(hex, "#")
	rv, _ := strconv.ParseUint(hex[0:2], 16, 8)
	gv, _ := strconv.ParseUint(hex[2:4], 16, 8)
	bv, _ := strconv.ParseUint(hex[4:6], 16, 8)
	return int(rv), int(gv), int(bv)
}

// Lab is a CIE L*a*b* color coordinate.
type Lab struct {
	L, A, B float64
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

const (
	labEpsilon = 0.008856
	labKappa   = 903.3
)

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16.0) / 116.0
}

// RGBToLab converts sRGB channels in [0,255] to CIE L*a*b* under a D65
// reference white, via linear RGB and XYZ.
func RGBToLab(r, g, b int) Lab {
	rl := srgbToLinear(float64(r) / 255.0)
	gl := srgbToLinear(float64(g) / 255.0)
	bl := srgbToLinear(float64(b) / 255.0)

	x := (rl*0.4124564 + gl*0.3575761 + bl*0.1804375) / 0.95047
	y := rl*0.2126729 + gl*0.7151522 + bl*0.0721750
	z := (rl*0.0193339 + gl*0.1191920 + bl*0.9503041) / 1.08883

	fx, fy, fz := labF(x), labF(y), labF(z)
	return Lab{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// HexToLab converts a normalized "#rrggbb" hex string to Lab.
func HexToLab(hex string) Lab {
	r, g, b := hexToRGB255(hex)
	return RGBToLab(r, g, b)
}

// CIE94 computes the CIE94 perceptual color difference between two Lab
// colors using the graphic-arts weighting (kL=1, K1=0.045, K2=0.015).
func CIE94(l1, l2 Lab) float64 {
	c1 := math.Sqrt(l1.A*l1.A + l1.B*l1.B)
	c2 := math.Sqrt(l2.A*l2.A + l2.B*l2.B)
	deltaL := l1.L - l2.L
	deltaC := c1 - c2
	deltaA := l1.A - l2.A
	deltaB := l1.B - l2.B
	deltaH2 := deltaA*deltaA + deltaB*deltaB - deltaC*deltaC
	if deltaH2 < 0.0 {
		deltaH2 = 0.0
	}

	const (
		kL = 1.0
		k1 = 0.045
		k2 = 0.015
		sL = 1.0
	)
	sC := 1.0 + k1*c1
	sH := 1.0 + k2*c1

	termL := deltaL / (kL * sL)
	termC := deltaC / sC
	termH2 := deltaH2 / (sH * sH)
	return math.Sqrt(termL*termL + termC*termC + termH2)
}
