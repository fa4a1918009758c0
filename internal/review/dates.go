package review

import (
	"strings"
	"time"

	"sjsage522/reviewworker/config"
)

const (
	// TimestampLayout is the canonical rendering of publication and reply times
	TimestampLayout = "2006-01-02 15:04:05"

	sourceTimestampLayout = "2006-01-02T15:04:05.000Z"
	calendarLayout        = "2 January 2006"
)

// DateNormalizer turns source-locale date strings into calendar dates
type DateNormalizer struct {
	months   map[string]time.Month
	prefixes []string
}

// NewDateNormalizer creates a normalizer for the given locale
func NewDateNormalizer(locale config.Locale) *DateNormalizer {
	months := make(map[string]time.Month, len(locale.MonthNames))
	for name, month := range locale.MonthNames {
		months[strings.ToLower(name)] = month
	}
	prefixes := make([]string, len(locale.DatePrefixes))
	for i, p := range locale.DatePrefixes {
		prefixes[i] = strings.ToLower(p)
	}
	return &DateNormalizer{months: months, prefixes: prefixes}
}

// Experience parses "<day> <month-name> <year>", optionally behind one of the
// locale prefixes. Day, month and year are reported together or not at all.
func (n *DateNormalizer) Experience(raw string) (ExperienceDate, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range n.prefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}

	parts := strings.Fields(s)
	if len(parts) != 3 {
		return ExperienceDate{}, false
	}

	month, ok := n.month(parts[1])
	if !ok {
		return ExperienceDate{}, false
	}

	// "1er" is how the first day of a month is written
	day := strings.TrimSuffix(parts[0], "er")

	t, err := time.Parse(calendarLayout, day+" "+month.String()+" "+parts[2])
	if err != nil {
		return ExperienceDate{}, false
	}
	return ExperienceDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, true
}

func (n *DateNormalizer) month(token string) (time.Month, bool) {
	if m, ok := n.months[token]; ok {
		return m, true
	}
	m, ok := n.months[strings.TrimSuffix(token, ".")]
	return m, ok
}

// ParseTimestamp re-parses a machine-formatted source timestamp into UTC
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{sourceTimestampLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Truncate(time.Second), true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t as YYYY-MM-DD HH:MM:SS in UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseCanonical reads a value produced by FormatTimestamp
func ParseCanonical(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.UTC)
}
