// Package pagerange parses user-supplied page-range expressions like
// "1-3,5,7-9" into sorted sets of 1-based page numbers.
package pagerange

import (
	"sort"
	"strconv"
	"strings"
)

// Parse converts a comma-separated page-range expression into a deduplicated,
// ascending list of page numbers within [1, maxPages].
//
// Each token is a single integer or an inclusive "start-end" range. A reversed
// range ("5-2") is treated as "2-5". Tokens that fail to parse and pages
// outside the valid bounds are dropped rather than failing the whole
// expression; callers treat an empty result as an invalid expression and
// re-prompt the user.
func Parse(expr string, maxPages int) []int {
	set := make(map[int]struct{})

	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if start, end, ok := splitRange(token); ok {
			if start > end {
				start, end = end, start
			}
			for p := start; p <= end; p++ {
				if p >= 1 && p <= maxPages {
					set[p] = struct{}{}
				}
			}
			continue
		}

		p, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		if p >= 1 && p <= maxPages {
			set[p] = struct{}{}
		}
	}

	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// All returns every page of a document, 1..maxPages. The "all" keyword is
// recognised by callers, not by Parse.
func All(maxPages int) []int {
	pages := make([]int, maxPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// splitRange splits "a-b" into its two integer endpoints. It reports false for
// tokens that are not a well-formed pair of integers.
func splitRange(token string) (int, int, bool) {
	dash := strings.Index(token, "-")
	if dash <= 0 || dash == len(token)-1 {
		return 0, 0, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(token[:dash]))
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(strings.TrimSpace(token[dash+1:]))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
