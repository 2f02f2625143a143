package export

import (
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"gray":   "#6b7280",
	"red":    "#ef4444",
	"orange": "#f97316",
	"yellow": "#eab308",
	"green":  "#22c55e",
	"blue":   "#3b82f6",
	"purple": "#a855f7",
	"pink":   "#ec4899",
}

// notes use the pastel variant of their color
var noteColors = map[string]string{
	"yellow": "#fef08a",
	"orange": "#fed7aa",
	"green":  "#bbf7d0",
	"blue":   "#bfdbfe",
	"purple": "#e9d5ff",
	"pink":   "#fbcfe8",
	"gray":   "#e5e7eb",
}

// resolveColor turns a palette name or #rgb/#rrggbb string into a color,
// using fallback when name is empty or unknown.
func resolveColor(name, fallback string, opacity float64) color.NRGBA {
	c, ok := parseHex(lookup(namedColors, name))
	if !ok {
		c, _ = parseHex(lookup(namedColors, fallback))
	}
	c.A = uint8(clamp01(opacity)*255 + 0.5)
	return c
}

func noteColor(name string) color.NRGBA {
	if hex, ok := noteColors[strings.ToLower(name)]; ok {
		c, _ := parseHex(hex)
		return c
	}
	return resolveColor(name, "yellow", 1)
}

func lookup(table map[string]string, name string) string {
	if hex, ok := table[strings.ToLower(name)]; ok {
		return hex
	}
	return name
}

func parseHex(s string) (color.NRGBA, bool) {
	s, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, false
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
