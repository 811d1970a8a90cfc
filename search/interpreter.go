// Package search implements the parking-space search pipeline: free-text
// query interpretation, availability/relevance filtering and proximity or
// keyword ranking. Everything in here is pure computation; callers supply a
// freshly-fetched inventory snapshot per request.
package search

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/parkpal/parkpal-backend/types"
)

// Canonical feature labels. Overlapping keyword synonyms collapse onto one
// label ("premium" and "luxury" both mean Premium); see DESIGN.md for the
// mapping decision.
const (
	FeatureSecurity = "24/7 Security"
	FeatureCovered  = "Covered"
	FeatureElectric = "Electric Charging"
	FeatureAccess   = "Disabled Access"
	FeatureValet    = "Valet"
	FeaturePremium  = "Premium"
	FeatureBudget   = "Budget"
)

// featureKeyword maps one vocabulary word to its canonical label.
type featureKeyword struct {
	word  string
	label string
}

// featureVocabulary is the fixed keyword set scanned for in every message.
var featureVocabulary = []featureKeyword{
	{"security", FeatureSecurity},
	{"secure", FeatureSecurity},
	{"cctv", FeatureSecurity},
	{"24/7", FeatureSecurity},
	{"covered", FeatureCovered},
	{"underground", FeatureCovered},
	{"indoor", FeatureCovered},
	{"electric", FeatureElectric},
	{"charging", FeatureElectric},
	{"ev", FeatureElectric},
	{"disabled", FeatureAccess},
	{"accessible", FeatureAccess},
	{"valet", FeatureValet},
	{"premium", FeaturePremium},
	{"luxury", FeaturePremium},
	{"budget", FeatureBudget},
	{"cheap", FeatureBudget},
	{"affordable", FeatureBudget},
}

var (
	// Location phrase patterns, tried in order; the first non-empty capture
	// wins and later patterns are not attempted.
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:in|at|near|around)\s+([a-z][a-z\s']+?)(?:\s+(?:parking|under|from|between|for|with|please)\b|[,.!?]|$)`),
		regexp.MustCompile(`(?i)\b([a-z][a-z\s']+?)\s+parking\b`),
		regexp.MustCompile(`(?i)\b(?:find|book|need)\s+parking\s+(?:in|at|near)\s+([a-z][a-z\s']+?)(?:[,.!?]|$)`),
	}

	// UK postcode shape: 1-2 letters, 1-2 digits, optional letter, then
	// 1 digit and 2 letters.
	postcodePattern = regexp.MustCompile(`(?i)\b([A-Z]{1,2}\d{1,2}[A-Z]?)\s*(\d[A-Z]{2})\b`)

	// what3words: ///word.word.word
	what3wordsPattern = regexp.MustCompile(`(?i)///([a-z]+)\.([a-z]+)\.([a-z]+)`)

	// Price ceiling: "under/less than/budget of/max £N", currency optional.
	pricePattern = regexp.MustCompile(`(?i)\b(?:under|less\s+than|budget\s+of|max(?:imum)?)\s*£?\s*(\d+)`)

	// Date range shapes.
	monthDatePattern = regexp.MustCompile(`(?i)\bfrom\s+([a-z]+)\s+(\d{1,2})(?:\s*(?:-|to|until)\s*([a-z]+)\s+(\d{1,2}))?`)
	slashDatePattern = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})(?:\s*-\s*(\d{2}/\d{2}/\d{4}))?`)
	isoDatePattern   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})(?:\s*-\s*(\d{4}-\d{2}-\d{2}))?`)
)

// nonLocationWords are tokens that disqualify a captured phrase from being a
// place name: verbs, fillers and the feature vocabulary. Without this the
// "X parking" pattern swallows messages like "need secure covered parking".
var nonLocationWords = map[string]bool{
	"me": true, "my": true, "a": true, "the": true, "here": true, "there": true,
	"need": true, "find": true, "book": true, "want": true, "get": true,
	"some": true, "nearby": true, "please": true, "parking": true, "space": true,
}

func init() {
	for _, kw := range featureVocabulary {
		nonLocationWords[kw.word] = true
	}
}

// Interpret parses one free-text message into a constraint set. It never
// fails: any field that cannot be extracted is simply absent, so malformed
// input degrades to a broader search rather than blocking it.
func Interpret(message string) types.SearchConstraints {
	c := types.SearchConstraints{}
	if strings.TrimSpace(message) == "" {
		return c
	}

	if loc := extractLocation(message); loc != "" {
		c.Location = &loc
	}
	if pc := extractPostcode(message); pc != "" {
		c.Postcode = &pc
	}
	if w3w := extractWhat3Words(message); w3w != "" {
		c.What3Words = &w3w
	}
	c.Features = extractFeatures(message)
	c.StartDate, c.EndDate = extractDateRange(message, time.Now())
	if price, ok := extractMaxPrice(message); ok {
		c.MaxPrice = &price
	}

	return c
}

func extractLocation(message string) string {
	for _, pattern := range locationPatterns {
		m := pattern.FindStringSubmatch(message)
		if len(m) < 2 {
			continue
		}
		phrase := strings.TrimSpace(m[1])
		if phrase == "" || !isPlausiblePlace(phrase) {
			continue
		}
		return phrase
	}
	return ""
}

// isPlausiblePlace rejects captures whose tokens are verbs, fillers or
// feature words rather than a place name.
func isPlausiblePlace(phrase string) bool {
	for _, token := range strings.Fields(strings.ToLower(phrase)) {
		if nonLocationWords[token] {
			return false
		}
	}
	return true
}

func extractPostcode(message string) string {
	m := postcodePattern.FindStringSubmatch(message)
	if len(m) < 3 {
		return ""
	}
	return strings.ToUpper(m[1]) + " " + strings.ToUpper(m[2])
}

func extractWhat3Words(message string) string {
	m := what3wordsPattern.FindStringSubmatch(message)
	if len(m) < 4 {
		return ""
	}
	return "///" + strings.ToLower(m[1]) + "." + strings.ToLower(m[2]) + "." + strings.ToLower(m[3])
}

// extractFeatures scans for the fixed vocabulary and maps matched words onto
// canonical labels, deduplicated in order of first appearance in the message.
func extractFeatures(message string) []string {
	lower := strings.ToLower(message)

	type hit struct {
		index int
		label string
	}
	var hits []hit
	for _, kw := range featureVocabulary {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw.word) + `\b`)
		loc := re.FindStringIndex(lower)
		if loc == nil {
			continue
		}
		hits = append(hits, hit{index: loc[0], label: kw.label})
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].index < hits[j].index })

	seen := map[string]bool{}
	var labels []string
	for _, h := range hits {
		if seen[h.label] {
			continue
		}
		seen[h.label] = true
		labels = append(labels, h.label)
	}
	return labels
}

// extractDateRange recognizes "from March 15 - March 20", DD/MM/YYYY and
// YYYY-MM-DD shapes, optionally ranged. Dates that fail to parse are dropped
// silently.
func extractDateRange(message string, now time.Time) (start, end *string) {
	if m := monthDatePattern.FindStringSubmatch(message); len(m) > 0 {
		if s := parseMonthDay(m[1], m[2], now.Year()); s != "" {
			start = &s
		}
		if m[3] != "" {
			if e := parseMonthDay(m[3], m[4], now.Year()); e != "" {
				end = &e
			}
		}
		if start != nil || end != nil {
			return start, end
		}
	}

	if m := slashDatePattern.FindStringSubmatch(message); len(m) > 0 {
		if s := reformatDate(m[1], "02/01/2006"); s != "" {
			start = &s
		}
		if m[2] != "" {
			if e := reformatDate(m[2], "02/01/2006"); e != "" {
				end = &e
			}
		}
		if start != nil || end != nil {
			return start, end
		}
	}

	if m := isoDatePattern.FindStringSubmatch(message); len(m) > 0 {
		if s := reformatDate(m[1], "2006-01-02"); s != "" {
			start = &s
		}
		if m[2] != "" {
			if e := reformatDate(m[2], "2006-01-02"); e != "" {
				end = &e
			}
		}
	}

	return start, end
}

func parseMonthDay(month, day string, year int) string {
	month = strings.ToLower(month)
	if month == "" {
		return ""
	}
	month = strings.ToUpper(month[:1]) + month[1:]
	for _, layout := range []string{"January 2 2006", "Jan 2 2006"} {
		t, err := time.Parse(layout, fmt.Sprintf("%s %s %d", month, day, year))
		if err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func reformatDate(value, layout string) string {
	t, err := time.Parse(layout, value)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func extractMaxPrice(message string) (int, bool) {
	m := pricePattern.FindStringSubmatch(message)
	if len(m) < 2 {
		return 0, false
	}
	price, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return price, true
}
