// Package textfmt holds the small display helpers shared by the thread view,
// the attachment tray and the session sidebar.
package textfmt

import (
	"strconv"
	"strings"
	"time"
)

// DefaultNameWidth is the width file names are truncated to in the tray.
const DefaultNameWidth = 40

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count using base-1024 units.
// One decimal is kept only for scaled values below 10 and only above bytes,
// and a trailing ".0" is dropped, so 1024 is "1 KB" and 1536 is "1.5 KB".
func FormatBytes(n uint64) string {
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}

	var num string
	if v < 10 && i > 0 {
		num = strconv.FormatFloat(v, 'f', 1, 64)
		num = strings.TrimSuffix(num, ".0")
	} else {
		num = strconv.FormatFloat(v, 'f', 0, 64)
	}
	return num + " " + byteUnits[i]
}

// Truncate shortens name to fit max runes by keeping the head and the last
// nine runes around an ellipsis. Names that already fit are returned as is.
func Truncate(name string, max int) string {
	r := []rune(name)
	if len(r) <= max {
		return name
	}
	head := max - 10
	if head < 0 {
		head = 0
	}
	tail := 9
	if tail > len(r) {
		tail = len(r)
	}
	return string(r[:head]) + "…" + string(r[len(r)-tail:])
}

// TruncateName is Truncate with DefaultNameWidth.
func TruncateName(name string) string {
	return Truncate(name, DefaultNameWidth)
}

// TimeOfDay formats t as hour:minute in t's own location.
func TimeOfDay(t time.Time) string {
	return t.Format("15:04")
}
