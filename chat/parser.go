package chat

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
)

// phrasePattern splits an utterance into candidate order phrases: an
// optional quantity followed by a run of letters and spaces. "2 greek salad
// and 1 tea" yields two phrases without any explicit delimiter.
var phrasePattern = regexp.MustCompile(`(\d+)?\s*([a-zA-Z ]+)`)

// stopwords are filler tokens stripped from a phrase before menu matching.
var stopwords = map[string]struct{}{
	"i": {}, "want": {}, "please": {}, "order": {}, "buy": {}, "can": {},
	"could": {}, "me": {}, "to": {}, "give": {}, "get": {}, "need": {},
	"would": {}, "like": {}, "have": {}, "some": {}, "with": {},
	"without": {}, "and": {}, "a": {}, "an": {}, "just": {},
}

// OrderLine is one recognized menu item mention with its quantity and the
// unit price captured from the menu snapshot at parse time.
type OrderLine struct {
	MenuItemID   uint64
	Name         string
	Quantity     int
	PricePerUnit float64
}

// ParseOrder extracts order lines from free text against the given menu
// snapshot. Matching is substring containment of the menu name in the
// cleaned phrase; among multiple containing names the longest wins, with
// snapshot order breaking ties. An item matched once is excluded from later
// phrases in the same utterance. Cleaned phrases longer than two characters
// that match nothing come back as missing, deduplicated.
func ParseOrder(query string, menu []models.MenuItem) (valid []OrderLine, missing []string) {
	query = strings.ToLower(query)

	names := make([]string, len(menu))
	for i, item := range menu {
		names[i] = strings.ToLower(item.Name)
	}

	seen := make(map[string]struct{})

	for _, match := range phrasePattern.FindAllStringSubmatch(query, -1) {
		quantityStr, phrase := match[1], match[2]

		var kept []string
		for _, word := range strings.Fields(strings.TrimSpace(phrase)) {
			if _, skip := stopwords[word]; !skip {
				kept = append(kept, word)
			}
		}
		if len(kept) == 0 {
			continue
		}
		cleaned := strings.Join(kept, " ")

		quantity := 1
		if quantityStr != "" {
			if n, err := strconv.Atoi(quantityStr); err == nil && n > 0 {
				quantity = n
			}
		}

		matched := -1
		for i, name := range names {
			if _, taken := seen[name]; taken {
				continue
			}
			if !strings.Contains(cleaned, name) {
				continue
			}
			if matched == -1 || len(name) > len(names[matched]) {
				matched = i
			}
		}

		if matched >= 0 {
			item := menu[matched]
			valid = append(valid, OrderLine{
				MenuItemID:   item.ID,
				Name:         item.Name,
				Quantity:     quantity,
				PricePerUnit: item.Price,
			})
			seen[names[matched]] = struct{}{}
			continue
		}

		// Drop short leftovers like "ok"; longer phrases are candidate
		// unknown items.
		if _, dup := seen[cleaned]; !dup && len(cleaned) > 2 {
			missing = append(missing, cleaned)
			seen[cleaned] = struct{}{}
		}
	}

	return valid, missing
}
