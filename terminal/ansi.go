package terminal

import (
	"strconv"
)

// SGR reset, written at the end of every row
const SGRReset = "\x1b[0m"

// AppendSGR appends a single combined SGR sequence selecting fg and bg.
// The sequence always starts with a reset so unset colors fall back to the
// terminal defaults. Mono colors emit nothing beyond the reset.
func AppendSGR(dst []byte, fg, bg Color) []byte {
	dst = append(dst, "\x1b[0"...)
	dst = appendColor(dst, fg, true)
	dst = appendColor(dst, bg, false)
	return append(dst, 'm')
}

func appendColor(dst []byte, c Color, fg bool) []byte {
	switch c.Kind {
	case ColorRGB:
		if fg {
			dst = append(dst, ";38;2;"...)
		} else {
			dst = append(dst, ";48;2;"...)
		}
		dst = strconv.AppendUint(dst, uint64(c.RGB.R), 10)
		dst = append(dst, ';')
		dst = strconv.AppendUint(dst, uint64(c.RGB.G), 10)
		dst = append(dst, ';')
		dst = strconv.AppendUint(dst, uint64(c.RGB.B), 10)
	case ColorIndexed:
		if fg {
			dst = append(dst, ";38;5;"...)
		} else {
			dst = append(dst, ";48;5;"...)
		}
		dst = strconv.AppendUint(dst, uint64(c.Index), 10)
	case ColorANSI:
		// 30-37 / 90-97 foreground, 40-47 / 100-107 background
		base := 30
		if !fg {
			base = 40
		}
		idx := int(c.Index & 0x0F)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		dst = append(dst, ';')
		dst = strconv.AppendInt(dst, int64(base+idx), 10)
	}
	return dst
}
