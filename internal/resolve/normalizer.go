package resolve

import (
	"regexp"
	"strings"
)

var (
	billTypePrefix = regexp.MustCompile(`(?i)^(bill|ordinance|resolution)\s*`)
	billIDPattern  = regexp.MustCompile(`^(\d{2})-?([OR])-?(\d{3,})`)
)

// abbreviations maps whole lowercase words to their expanded forms.
// Matching is whole-word only; substrings inside longer words are never
// touched.
var abbreviations = map[string]string{
	"dept": "department",
	"div":  "division",
	"comm": "committee",
	"atl":  "atlanta",
	"dev":  "development",
	"mgmt": "management",
	"fin":  "finance",
	"hr":   "human resources",
	"it":   "information technology",
	"apd":  "atlanta police department",
	"afd":  "atlanta fire department",
	"dot":  "department of transportation",
}

// NormalizeBillID renders a raw bill identifier in the standard DD-L-NNN
// form. A leading type word (bill/ordinance/resolution) is stripped and the
// remainder upper-cased and trimmed before structural matching. Inputs that
// do not match the structural pattern are returned upper-cased and trimmed,
// so every unparseable ID becomes its own canonical form. Never fails and
// is idempotent.
func NormalizeBillID(raw string) string {
	id := billTypePrefix.ReplaceAllString(raw, "")
	id = strings.ToUpper(strings.TrimSpace(id))

	if m := billIDPattern.FindStringSubmatch(id); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}
	return id
}

// NormalizeText prepares free text for fuzzy comparison: lower-cased,
// trimmed, whitespace collapsed, with known abbreviations expanded
// word-by-word.
func NormalizeText(raw string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	for i, w := range words {
		if expanded, ok := abbreviations[w]; ok {
			words[i] = expanded
		}
	}
	return strings.Join(words, " ")
}
