package asof

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// yearRe matches years 2000 through 2029 anywhere in the text.
var yearRe = regexp.MustCompile(`20[0-2][0-9]`)

// Analysis is the temporal context assembled from search results for a
// single query. It is not modified after Analyze returns it.
type Analysis struct {
	CurrentYear int `json:"currentYear"`

	// ContentYear is the most recent year mentioned in RawContent, or zero
	// when none was found.
	ContentYear int `json:"contentYear,omitempty"`

	RawContent string `json:"rawContent"`
	Query      string `json:"query"`
}

// ExtractYear returns the last year found in text scanning left to right.
//
// Only 2000-2029 are recognized, so any text written about 2030 or later
// yields the last year before that range or nothing at all.
// TODO: derive the upper bound from the current year instead of a fixed decade.
func ExtractYear(text string) (int, bool) {
	matches := yearRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return 0, false
	}
	year, err := strconv.Atoi(matches[len(matches)-1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// Analyze joins result bodies with single spaces and records the latest
// year they mention together with the current year taken from now.
func Analyze(results []SearchResult, query string, now time.Time) Analysis {
	bodies := make([]string, 0, len(results))
	for _, r := range results {
		bodies = append(bodies, r.Body)
	}
	content := strings.Join(bodies, " ")

	a := Analysis{
		CurrentYear: now.Year(),
		RawContent:  content,
		Query:       query,
	}
	if year, ok := ExtractYear(content); ok {
		a.ContentYear = year
	}
	return a
}
