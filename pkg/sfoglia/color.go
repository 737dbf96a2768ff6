package sfoglia

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBAColor builds an "#AARRGGBB" color string from a "#RRGGBB" literal and
// an opacity between 0.0 (transparent) and 1.0 (opaque). The alpha byte is
// round(255*opacity) as two lowercase hex digits, inserted right after the
// leading '#'. Opacity outside [0, 1] is not clamped; callers are expected
// to pre-validate.
func RGBAColor(rgbColor string, opacity float64) string {
	if rgbColor == "" {
		return rgbColor
	}
	alpha := int(math.Round(255 * opacity))
	return fmt.Sprintf("%s%02x%s", rgbColor[:1], alpha, rgbColor[1:])
}

// ParseColor converts a color literal such as "#ff8800" into a structured
// color. The second return value reports whether the literal was valid.
func ParseColor(s string) (colorful.Color, bool) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}
