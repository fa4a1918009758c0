package review

import (
	"fmt"
	"testing"
	"time"

	"sjsage522/reviewworker/config"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestExperienceRoundTrip(t *testing.T) {
	locale := config.DefaultLocale()
	normalizer := NewDateNormalizer(locale)

	for name, month := range locale.MonthNames {
		for _, token := range []string{name, name + "."} {
			raw := fmt.Sprintf("14 %s 2023", token)
			got, ok := normalizer.Experience(raw)
			if !ok {
				t.Errorf("%q: expected a date", raw)
				continue
			}
			want := ExperienceDate{Year: 2023, Month: month, Day: 14}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%q: (-want +got)\n%s", raw, diff)
			}
		}
	}
}

func TestExperienceShapes(t *testing.T) {
	normalizer := NewDateNormalizer(config.DefaultLocale())

	testCases := []struct {
		text     string
		expected *ExperienceDate
	}{
		{
			text:     "Date de l'expérience : 3 mars 2024",
			expected: &ExperienceDate{Year: 2024, Month: time.March, Day: 3},
		},
		{
			text:     "  Date de l’expérience : 21 Décembre 2022 ",
			expected: &ExperienceDate{Year: 2022, Month: time.December, Day: 21},
		},
		{
			text:     "1er janv. 2025",
			expected: &ExperienceDate{Year: 2025, Month: time.January, Day: 1},
		},
		{
			text:     "07 août 2021",
			expected: &ExperienceDate{Year: 2021, Month: time.August, Day: 7},
		},
		{text: "14 brumaire 2023"},
		{text: "31 février 2024"},
		{text: "mars 2024"},
		{text: "14 March 2023"},
		{text: ""},
	}

	for _, tc := range testCases {
		got, ok := normalizer.Experience(tc.text)
		if tc.expected == nil {
			assert.False(t, ok, tc.text)
			assert.Equal(t, ExperienceDate{}, got, "no partial result for %q", tc.text)
			continue
		}
		if assert.True(t, ok, tc.text) {
			if diff := cmp.Diff(*tc.expected, got); diff != "" {
				t.Errorf("%q: (-want +got)\n%s", tc.text, diff)
			}
		}
	}
}

func TestExperienceDateString(t *testing.T) {
	d := ExperienceDate{Year: 2024, Month: time.March, Day: 3}
	assert.Equal(t, "2024-03-03", d.String())
	assert.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), d.Time())
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := ParseTimestamp("2024-03-05T14:22:31.000Z")
	assert.True(t, ok)
	assert.Equal(t, "2024-03-05 14:22:31", FormatTimestamp(ts))

	ts, ok = ParseTimestamp("2024-03-05T16:22:31+02:00")
	assert.True(t, ok)
	assert.Equal(t, "2024-03-05 14:22:31", FormatTimestamp(ts))

	back, err := ParseCanonical("2024-03-05 14:22:31")
	assert.NoError(t, err)
	assert.True(t, back.Equal(ts))

	for _, raw := range []string{"", "il y a 2 jours", "2024-03-05"} {
		_, ok := ParseTimestamp(raw)
		assert.False(t, ok, raw)
	}
}
