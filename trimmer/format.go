package trimmer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTime formats seconds as MM:SS. Both fields are floored, never
// rounded; minutes grow past two digits for long clips.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	if math.IsInf(seconds, 1) {
		seconds = math.MaxInt32
	}
	whole := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", whole/60, whole%60)
}

// ParseTime parses an MM:SS label produced by FormatTime back into whole
// seconds.
func ParseTime(s string) (float64, error) {
	mm, ss, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("trimmer: malformed time %q", s)
	}
	mins, err := strconv.Atoi(mm)
	if err != nil || mins < 0 {
		return 0, fmt.Errorf("trimmer: malformed minutes in %q", s)
	}
	secs, err := strconv.Atoi(ss)
	if err != nil || secs < 0 || secs > 59 || len(ss) != 2 {
		return 0, fmt.Errorf("trimmer: malformed seconds in %q", s)
	}
	return float64(mins*60 + secs), nil
}
