package batch

import (
	"fmt"
	"strings"
)

// ShortURL renders rawURL for progress output in at most max runes. The
// scheme is dropped; when still too long, the host and the tail of the
// path are kept around an ellipsis, since the handle or item ID at the end
// is what tells pages apart.
func ShortURL(rawURL string, max int) string {
	if max <= 0 {
		return ""
	}
	s := rawURL
	if i := strings.Index(s, "://"); i != -1 {
		s = s[i+3:]
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}

	host, _, _ := strings.Cut(s, "/")
	hr := []rune(host)
	// host + "/…/" + at least a few characters of the tail
	if len(hr)+3+4 > max {
		return "…" + string(r[len(r)-(max-1):])
	}
	tail := max - len(hr) - 3
	return host + "/…" + string(r[len(r)-tail-1:])
}

// FormatSize renders a byte count with a binary unit.
func FormatSize(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMG"[exp])
}
