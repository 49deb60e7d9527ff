package bowl

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

func FormatLength(m float64) string {
	switch {
	case m < 1e-6:
		return fmt.Sprintf("%.2f picometers", m*1e12)
	case m < 1e-3:
		return fmt.Sprintf("%.2f nanometers", m*1e9)
	case m < 1:
		return fmt.Sprintf("%.2f millimeters", m*1e3)
	default:
		return fmt.Sprintf("%.2f meters", m)
	}
}

func FormatFrequency(hz float64) string {
	return fmt.Sprintf("%.2f Hz", hz)
}

// FormatSI prints hz with an SI prefix, e.g. "18.071 THz".
func FormatSI(hz float64) string {
	return humanize.SIWithDigits(hz, 3, "Hz")
}
