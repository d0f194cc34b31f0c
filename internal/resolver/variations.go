package resolver

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minQueryRunes is the shortest text worth sending to text search.
const minQueryRunes = 2

// Variations lists the text-search queries to try for q, in order: the
// trimmed input; for URLs, the URL without scheme and "www.", and the
// decoded /place/<name>/ segment. Duplicates and strings shorter than two
// characters are dropped. An input shorter than two characters yields none.
func Variations(q Query) []string {
	if utf8.RuneCountInString(q.Text) < minQueryRunes {
		return nil
	}
	out := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)
	add := func(s string) {
		s = norm.NFC.String(strings.TrimSpace(s))
		if utf8.RuneCountInString(s) < minQueryRunes {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(q.Text)
	if q.IsURL {
		bare := q.Text
		if i := strings.Index(bare, "://"); i >= 0 {
			bare = bare[i+3:]
		}
		bare = strings.TrimPrefix(bare, "www.")
		add(bare)
		add(placeSegment(q.URL))
	}
	return out
}
