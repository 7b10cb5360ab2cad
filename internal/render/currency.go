package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxPaiseExact is the largest amount whose paise a float64 holds exactly.
const maxPaiseExact = 1 << 53 / 100

// FormatINR formats an amount in rupees with Indian digit grouping: the last
// three digits, then groups of two (₹1,25,000). Paise are shown only when
// non-zero.
func FormatINR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "₹0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	var whole string
	var frac int64
	if v < maxPaiseExact {
		paise := int64(math.Round(v * 100))
		whole, frac = strconv.FormatInt(paise/100, 10), paise%100
	} else {
		// Paise would overflow; show whole rupees.
		whole = strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("₹")
	b.WriteString(groupIndian(whole))
	if frac != 0 {
		fmt.Fprintf(&b, ".%02d", frac)
	}
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}
