package brand

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/brandkit/internal/document"
)

var (
	hex3Pattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3})$`)
	hex6Pattern = regexp.MustCompile(`^#?([0-9a-fA-F]{6})$`)
	rgbPattern  = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*(0|1|0?\.\d+|1\.0*)\s*)?\)$`)
)

// HexToRGB parses a 6-digit hex colour with or without a leading '#'.
// Anything else resolves to black.
func HexToRGB(hex string) document.RGB {
	m := hex6Pattern.FindStringSubmatch(strings.TrimSpace(hex))
	if m == nil {
		return document.RGB{}
	}
	v, err := strconv.ParseUint(m[1], 16, 32)
	if err != nil {
		return document.RGB{}
	}
	return document.RGB{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// ParseColor accepts #rgb, #rrggbb, rgb(r,g,b) and rgba(r,g,b,a) and returns
// the colour as uppercase 6-digit hex with a leading '#'.
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if m := hex6Pattern.FindStringSubmatch(s); m != nil {
		return "#" + strings.ToUpper(m[1]), nil
	}
	if m := hex3Pattern.FindStringSubmatch(s); m != nil {
		var b strings.Builder
		b.WriteByte('#')
		for _, r := range strings.ToUpper(m[1]) {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String(), nil
	}
	if m := rgbPattern.FindStringSubmatch(strings.ToLower(s)); m != nil {
		var ch [3]int
		for i := 0; i < 3; i++ {
			v, _ := strconv.Atoi(m[i+1])
			if v > 255 {
				return "", fmt.Errorf("colour channel %d out of range in %q", v, s)
			}
			ch[i] = v
		}
		return fmt.Sprintf("#%02X%02X%02X", ch[0], ch[1], ch[2]), nil
	}
	return "", fmt.Errorf("invalid colour %q", s)
}
