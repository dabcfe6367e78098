package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSRTTimestamp renders seconds as HH:MM:SS,mmm.
func FormatSRTTimestamp(seconds float64) string {
	return formatTimestamp(seconds, ',')
}

// FormatVTTTimestamp renders seconds as HH:MM:SS.mmm.
func FormatVTTTimestamp(seconds float64) string {
	return formatTimestamp(seconds, '.')
}

func formatTimestamp(seconds float64, sep byte) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	msTotal := int64(seconds*1000 + 0.5)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

// ParseTimestamp parses HH:MM:SS,mmm or HH:MM:SS.mmm into seconds. The hour
// field may be omitted, as WebVTT allows.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ",", ".")
	clock, fraction, ok := strings.Cut(value, ".")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	fields := strings.Split(clock, ":")
	if len(fields) == 2 {
		fields = append([]string{"0"}, fields...)
	}
	if len(fields) != 3 || len(fraction) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(fields[0])
	minutes, errM := strconv.Atoi(fields[1])
	secs, errS := strconv.Atoi(fields[2])
	millis, errMS := strconv.Atoi(fraction)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || secs < 0 || secs > 59 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+secs) + float64(millis)/1000, nil
}
