package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts comma separators every three digits into a
// decimal number string. A leading sign is preserved. Strings that are
// not plain decimal numbers are returned unchanged.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}

	sign := ""
	digits := s
	if digits[0] == '+' || digits[0] == '-' {
		sign = digits[:1]
		digits = digits[1:]
	}

	for _, c := range digits {
		if c < '0' || c > '9' {
			return s
		}
	}
	if len(digits) <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(sign) + len(digits) + len(digits)/3)
	b.WriteString(sign)

	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatBytes renders a byte count in human-readable binary units.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
