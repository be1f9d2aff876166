package tickshell

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to ebiten.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the default background.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA returns the premultiplied 8-bit form of c.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// UnmarshalText parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("parse color %q: want #rrggbb or #rrggbbaa", text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("parse color %q: %w", text, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	c.R = float64(v>>24&0xff) / 255
	c.G = float64(v>>16&0xff) / 255
	c.B = float64(v>>8&0xff) / 255
	c.A = float64(v&0xff) / 255
	return nil
}

// MarshalText formats c as "#rrggbbaa".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5), uint8(clamp01(c.G)*255+0.5),
		uint8(clamp01(c.B)*255+0.5), uint8(clamp01(c.A)*255+0.5))), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Key is a key code as reported by the host input system.
type Key int

// MouseButton identifies a mouse button. The zero value means no button.
type MouseButton uint8

const (
	MouseButtonNone   MouseButton = iota // no button is down
	MouseButtonLeft                      // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// String returns a short lowercase name for the button.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonNone:
		return "none"
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "button" + strconv.Itoa(int(b))
	}
}
