package resolve

import "testing"

func TestNormalizeBillID_StandardForms(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"25-O-1271", "25-O-1271"},
		{"25-o-1271", "25-O-1271"},
		{"25O1271", "25-O-1271"},
		{"25-R-3450", "25-R-3450"},
		{"Ordinance 25-O-1271", "25-O-1271"},
		{"ordinance 25-o-1271", "25-O-1271"},
		{"Resolution 25-R-3450", "25-R-3450"},
		{"Bill 25-O-1271", "25-O-1271"},
		{"  25-O-1271  ", "25-O-1271"},
	}

	for _, c := range cases {
		if got := NormalizeBillID(c.input); got != c.want {
			t.Errorf("NormalizeBillID(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestNormalizeBillID_UnparseablePassThrough(t *testing.T) {
	// Malformed IDs normalize to their own upper-cased trimmed form and
	// become singleton clusters, never errors.
	cases := []struct {
		input string
		want  string
	}{
		{"special item #4", "SPECIAL ITEM #4"},
		{"25-X-1271", "25-X-1271"},
		{"", ""},
		{"  agenda item  ", "AGENDA ITEM"},
	}

	for _, c := range cases {
		if got := NormalizeBillID(c.input); got != c.want {
			t.Errorf("NormalizeBillID(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestNormalizeBillID_Idempotent(t *testing.T) {
	inputs := []string{
		"25-O-1271",
		"Ordinance 25-o-1271",
		"25R3450",
		"special item #4",
		"",
	}

	for _, input := range inputs {
		once := NormalizeBillID(input)
		twice := NormalizeBillID(once)
		if once != twice {
			t.Errorf("NormalizeBillID not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeText_AbbreviationExpansion(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Finance Dept", "finance department"},
		{"HR", "human resources"},
		{"APD", "atlanta police department"},
		{"Dept of Finance", "department of finance"},
		{"ATL DOT", "atlanta department of transportation"},
	}

	for _, c := range cases {
		if got := NormalizeText(c.input); got != c.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestNormalizeText_WholeWordOnly(t *testing.T) {
	// "it" inside "department" or "items" must not expand
	if got := NormalizeText("Department Items"); got != "department items" {
		t.Errorf("expected substrings untouched, got %q", got)
	}
	if got := NormalizeText("Deptford"); got != "deptford" {
		t.Errorf("expected %q untouched, got %q", "deptford", got)
	}
}

func TestNormalizeText_WhitespaceCollapse(t *testing.T) {
	if got := NormalizeText("  Department   of\tFinance "); got != "department of finance" {
		t.Errorf("expected collapsed whitespace, got %q", got)
	}
	if got := NormalizeText(""); got != "" {
		t.Errorf("expected empty output for empty input, got %q", got)
	}
}
