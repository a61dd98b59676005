// Package format holds the display helpers UI consumers apply to
// envelope data. The rules are deliberately literal; anything fancier
// belongs in the presentation layer.
package format

import (
	"fmt"
	"math"
	"time"
)

// Number abbreviates large magnitudes with T/B/M/K suffixes at two
// decimals. Values under a thousand keep two decimals unsuffixed.
func Number(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// Price renders a USD price with precision scaled to magnitude:
// 2 decimals at >= $1, 4 at >= $0.01, 6 at >= $0.0001, else 8.
func Price(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1:
		return fmt.Sprintf("$%.2f", v)
	case abs >= 0.01:
		return fmt.Sprintf("$%.4f", v)
	case abs >= 0.0001:
		return fmt.Sprintf("$%.6f", v)
	default:
		return fmt.Sprintf("$%.8f", v)
	}
}

// Percentage renders a signed percentage with two decimals; the sign is
// explicit, with a leading + for non-negative values.
func Percentage(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// Date renders a timestamp as a short human-readable date.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
