package crawler

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"sjsage522/reviewworker/config"
	"sjsage522/reviewworker/internal/review"
)

var (
	isoTimestampRegex = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z`)
	ratingLabelRegex  = regexp.MustCompile(`(?i)(?:not[ée]|rated)\s+(\d)\s+(?:sur|out of)\s+5`)
	integerRegex      = regexp.MustCompile(`(\d+)`)
	reviewCountRegex  = regexp.MustCompile(`(?i)(\d+)\s+avis`)
	languageRegex     = regexp.MustCompile(`(?i)langue d['’]origine\s*:\s*([a-z]{2,3})\b`)
	languageCodeRegex = regexp.MustCompile(`^[A-Za-z]{2,3}$`)
	experienceRegex   = regexp.MustCompile(`(?i)date de l['’]exp[ée]rience\s*:\s*(\d{1,2}(?:er)?\s+\S+\s+\d{4})`)
)

// fieldChains holds the fallback chain of every extracted field
type fieldChains struct {
	publishedAt Chain[time.Time]
	name        Chain[string]
	reviewCount Chain[int]
	language    Chain[string]
	rating      Chain[int]
	experience  Chain[review.ExperienceDate]
	title       Chain[string]
	content     Chain[string]
	invited     Chain[bool]
	hasReply    Chain[bool]
	repliedAt   Chain[time.Time]
}

func newFieldChains(sel Selectors, locale config.Locale, dates *review.DateNormalizer) fieldChains {
	invitedPhrase := strings.ToLower(locale.InvitedPhrase)

	return fieldChains{
		publishedAt: Chain[time.Time]{
			{Name: "header-time", Extract: timeAttr(sel.HeaderTime)},
			{Name: "time-attr", Extract: timeAttr(sel.PublishedTime)},
			{Name: "iso-pattern", Extract: func(n Node) (time.Time, bool) {
				return review.ParseTimestamp(isoTimestampRegex.FindString(n.HTML()))
			}},
		},
		name: Chain[string]{
			{Name: "consumer-name", Extract: text(sel.ConsumerName)},
			{Name: "consumer-attr", Extract: text(sel.ConsumerAttr)},
		},
		reviewCount: Chain[int]{
			{Name: "subtle-span", Extract: func(n Node) (int, bool) {
				return firstInt(subtleSpan(n, sel.SubtleSpan, 1))
			}},
			{Name: "count-attr", Extract: func(n Node) (int, bool) {
				return firstInt(n.Find(sel.ReviewCount).Text())
			}},
			{Name: "count-pattern", Extract: func(n Node) (int, bool) {
				return submatchInt(reviewCountRegex, n.Text())
			}},
		},
		language: Chain[string]{
			{Name: "subtle-span", Extract: func(n Node) (string, bool) {
				s := subtleSpan(n, sel.SubtleSpan, 0)
				if m := languageRegex.FindStringSubmatch(s); m != nil {
					return m[1], true
				}
				if languageCodeRegex.MatchString(s) {
					return s, true
				}
				return "", false
			}},
			{Name: "country-attr", Extract: func(n Node) (string, bool) {
				s := n.Find(sel.Country).Text()
				return s, languageCodeRegex.MatchString(s)
			}},
			{Name: "language-pattern", Extract: func(n Node) (string, bool) {
				if m := languageRegex.FindStringSubmatch(n.Text()); m != nil {
					return m[1], true
				}
				return "", false
			}},
		},
		rating: Chain[int]{
			{Name: "star-alt", Extract: func(n Node) (int, bool) {
				alt, _ := n.Find(sel.StarRating).Attr("alt")
				return ratingFromLabel(alt)
			}},
			{Name: "rating-attr", Extract: func(n Node) (int, bool) {
				v, ok := n.Find(sel.RatingAttr).Attr(strings.Trim(sel.RatingAttr, "[]"))
				if !ok {
					return 0, false
				}
				rating, err := strconv.Atoi(v)
				if err != nil || rating < 1 || rating > 5 {
					return 0, false
				}
				return rating, true
			}},
			{Name: "label-pattern", Extract: func(n Node) (int, bool) {
				for _, el := range append([]Node{n}, n.FindAll("[alt], [aria-label]")...) {
					for _, name := range []string{"alt", "aria-label"} {
						if label, ok := el.Attr(name); ok {
							if rating, ok := ratingFromLabel(label); ok {
								return rating, true
							}
						}
					}
				}
				return 0, false
			}},
		},
		experience: Chain[review.ExperienceDate]{
			{Name: "subtle-span", Extract: func(n Node) (review.ExperienceDate, bool) {
				return dates.Experience(subtleSpan(n, sel.SubtleSpan, 2))
			}},
			{Name: "experience-attr", Extract: func(n Node) (review.ExperienceDate, bool) {
				return dates.Experience(n.Find(sel.Experience).Text())
			}},
			{Name: "experience-pattern", Extract: func(n Node) (review.ExperienceDate, bool) {
				m := experienceRegex.FindStringSubmatch(n.Text())
				if m == nil {
					return review.ExperienceDate{}, false
				}
				return dates.Experience(m[1])
			}},
		},
		title: Chain[string]{
			{Name: "heading", Extract: text(sel.Title)},
			{Name: "title-attr", Extract: text(sel.TitleAttr)},
			{Name: "any-h2", Extract: text("h2")},
		},
		content: Chain[string]{
			{Name: "body-text", Extract: text(sel.Content)},
			{Name: "text-attr", Extract: text(sel.ContentAttr)},
		},
		invited: Chain[bool]{
			{Name: "details-label", Extract: containsPhrase(sel.InvitedLabel, invitedPhrase)},
			{Name: "label-attr", Extract: containsPhrase(sel.InvitedAttr, invitedPhrase)},
		},
		hasReply: Chain[bool]{
			{Name: "reply-block", Extract: exists(sel.Reply)},
			{Name: "reply-attr", Extract: exists(sel.ReplyAttr)},
		},
		repliedAt: Chain[time.Time]{
			{Name: "reply-info", Extract: timeAttr(sel.ReplyTime)},
			{Name: "reply-time-attr", Extract: timeAttr(sel.ReplyTimeAttr)},
		},
	}
}

func text(selector string) func(Node) (string, bool) {
	return func(n Node) (string, bool) {
		s := n.Find(selector).Text()
		return s, s != ""
	}
}

func exists(selector string) func(Node) (bool, bool) {
	return func(n Node) (bool, bool) {
		found := n.Find(selector).Exists()
		return found, found
	}
}

func timeAttr(selector string) func(Node) (time.Time, bool) {
	return func(n Node) (time.Time, bool) {
		raw, ok := n.Find(selector).Attr("datetime")
		if !ok {
			return time.Time{}, false
		}
		return review.ParseTimestamp(raw)
	}
}

func containsPhrase(selector, phrase string) func(Node) (bool, bool) {
	return func(n Node) (bool, bool) {
		if phrase == "" {
			return false, false
		}
		found := strings.Contains(strings.ToLower(n.Find(selector).Text()), phrase)
		return found, found
	}
}

func subtleSpan(n Node, selector string, index int) string {
	spans := n.FindAll(selector)
	if index >= len(spans) {
		return ""
	}
	return spans[index].Text()
}

func firstInt(s string) (int, bool) {
	return submatchInt(integerRegex, s)
}

func submatchInt(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func ratingFromLabel(label string) (int, bool) {
	v, ok := submatchInt(ratingLabelRegex, label)
	if !ok || v < 1 || v > 5 {
		return 0, false
	}
	return v, true
}
