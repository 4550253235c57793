// Package pkg holds small formatting helpers shared by the commands and the
// access log.
package pkg

import (
	"strconv"
	"strings"
	"time"
)

type timeUnit struct {
	short string
	value time.Duration
}

// Largest first.
var units = []timeUnit{
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
}

// FormatDuration renders d compactly: "850ms", "12μs", or at most two units
// from a second up ("1m30s", "2d3h"). Negative durations get a leading "-".
func FormatDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "0"
	case d < 0:
		return "-" + FormatDuration(-d)
	case d >= time.Second:
		var sb strings.Builder
		parts := 0
		for _, u := range units {
			if d < u.value {
				continue
			}
			sb.WriteString(strconv.FormatInt(int64(d/u.value), 10))
			sb.WriteString(u.short)
			d %= u.value
			if parts++; parts == 2 || d < time.Second {
				break
			}
		}
		return sb.String()
	case d >= time.Millisecond:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	case d >= time.Microsecond:
		return strconv.FormatInt(d.Microseconds(), 10) + "μs"
	default:
		return strconv.FormatInt(d.Nanoseconds(), 10) + "ns"
	}
}
