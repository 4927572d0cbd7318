package resolve

import (
	"reflect"
	"testing"

	"github.com/opencivics/civigraph/internal/model"
)

func TestResolveBills_EndToEnd(t *testing.T) {
	bills := []string{"25-O-1271", "Ordinance 25-o-1271", "25-R-3450"}

	got := ResolveBills(bills)

	want := model.AliasMap{
		"25-O-1271":           "25-O-1271",
		"Ordinance 25-o-1271": "25-O-1271",
		"25-R-3450":           "25-R-3450",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveBills = %v, want %v", got, want)
	}
}

func TestResolveBills_CanonicalMapsToItself(t *testing.T) {
	bills := []string{"Ordinance 25-o-1271", "25-R-3450", "special item"}

	lookup := ResolveBills(bills)

	for _, canonical := range lookup {
		if lookup[canonical] != canonical {
			t.Errorf("canonical %q maps to %q, want itself", canonical, lookup[canonical])
		}
	}
}

func TestResolveBills_Totality(t *testing.T) {
	bills := []string{"25-O-1271", "25-o-1271", "Bill 25-O-1271", "25-R-3450", "item 9"}

	lookup := ResolveBills(bills)

	for _, b := range bills {
		if _, ok := lookup[b]; !ok {
			t.Errorf("input %q missing from alias map", b)
		}
	}
}

func TestResolveBills_Empty(t *testing.T) {
	if got := ResolveBills(nil); len(got) != 0 {
		t.Errorf("expected empty alias map, got %v", got)
	}
}

func TestResolveFuzzy_OrganizationsScenario(t *testing.T) {
	orgs := []string{"Department of Finance", "DOF", "Finance", "Atlanta Police Department"}

	got := ResolveFuzzy(orgs, DefaultThreshold)

	want := model.AliasMap{
		"Atlanta Police Department": "Atlanta Police Department",
		"DOF":                       "DOF",
		"Department of Finance":     "Department of Finance",
		"Finance":                   "Department of Finance",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveFuzzy = %v, want %v", got, want)
	}
}

func TestResolveFuzzy_Deterministic(t *testing.T) {
	// Same set in different input orders must yield identical alias maps:
	// the internal sort fixes the iteration order.
	forward := []string{"Public Works", "Dept of Public Works", "Parks Division", "Parks Div"}
	backward := []string{"Parks Div", "Parks Division", "Dept of Public Works", "Public Works"}

	a := ResolveFuzzy(forward, DefaultThreshold)
	b := ResolveFuzzy(backward, DefaultThreshold)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("resolution depends on input order:\n%v\nvs\n%v", a, b)
	}
}

func TestResolveFuzzy_ThresholdBoundary(t *testing.T) {
	// Containment pairs score exactly 0.85: merged at threshold 0.85,
	// separate the moment the threshold exceeds the score.
	names := []string{"Department of Finance", "Finance"}

	merged := ResolveFuzzy(names, 0.85)
	if merged["Finance"] != "Department of Finance" {
		t.Errorf("pair scoring exactly 0.85 must merge at threshold 0.85, got %v", merged)
	}

	separate := ResolveFuzzy(names, 0.8501)
	if separate["Finance"] != "Finance" {
		t.Errorf("pair scoring 0.85 must stay separate above the threshold, got %v", separate)
	}
}

func TestResolveFuzzy_BelowThresholdStaysSeparate(t *testing.T) {
	// ratio("abcd","abce") = 0.75
	got := ResolveFuzzy([]string{"abcd", "abce"}, DefaultThreshold)

	if got["abcd"] != "abcd" || got["abce"] != "abce" {
		t.Errorf("sub-threshold pair merged: %v", got)
	}
}

func TestResolveFuzzy_SinglePassNotTransitive(t *testing.T) {
	// "of Finance" is claimed by "Department of Finance" on the first pass
	// and never re-evaluated against later canonicals, even if one would
	// match better. Every name still lands in exactly one cluster.
	names := []string{"Department of Finance", "of Finance", "Office of Finance"}

	got := ResolveFuzzy(names, DefaultThreshold)

	if got["of Finance"] != "Department of Finance" {
		t.Errorf("expected first canonical to claim the alias, got %v", got)
	}
	if got["Office of Finance"] != "Office of Finance" {
		t.Errorf("expected unclaimed name to become its own canonical, got %v", got)
	}

	for alias := range got {
		if _, ok := got[got[alias]]; !ok {
			t.Errorf("canonical %q for %q missing from map", got[alias], alias)
		}
	}
}

func TestResolveFuzzy_DuplicateInputs(t *testing.T) {
	got := ResolveFuzzy([]string{"Finance", "Finance", "Finance"}, DefaultThreshold)

	if len(got) != 1 || got["Finance"] != "Finance" {
		t.Errorf("expected singleton map, got %v", got)
	}
}

func TestResolveFuzzy_Empty(t *testing.T) {
	if got := ResolveFuzzy(nil, DefaultThreshold); len(got) != 0 {
		t.Errorf("expected empty alias map, got %v", got)
	}
}

func TestResolveFuzzy_DisjointClusters(t *testing.T) {
	names := []string{
		"Department of Finance", "Finance", "Fin Committee",
		"Atlanta Police Department", "APD Budget Office",
		"Peachtree Development", "Peachtree Development Project",
	}

	lookup := ResolveFuzzy(names, DefaultThreshold)

	// Totality: every input appears exactly once as a key
	if len(lookup) != len(dedupeSorted(names)) {
		t.Fatalf("expected %d keys, got %d", len(dedupeSorted(names)), len(lookup))
	}
	for _, n := range names {
		canonical, ok := lookup[n]
		if !ok {
			t.Errorf("input %q missing from alias map", n)
			continue
		}
		if lookup[canonical] != canonical {
			t.Errorf("canonical %q of %q does not map to itself", canonical, n)
		}
	}
}

func TestResolveAll(t *testing.T) {
	agg := &model.Aggregated{
		Bills:         []string{"25-O-1271", "ordinance 25-o-1271"},
		Organizations: []string{"Department of Finance", "Finance"},
		Projects:      []string{"Beltline Expansion", "Beltline Expansion Phase 2"},
	}

	res := ResolveAll(agg, DefaultThreshold)

	if res.Bills["ordinance 25-o-1271"] != "25-O-1271" {
		t.Errorf("bills not resolved: %v", res.Bills)
	}
	if res.Organizations["Finance"] != "Department of Finance" {
		t.Errorf("organizations not resolved: %v", res.Organizations)
	}
	if res.Projects["Beltline Expansion Phase 2"] != "Beltline Expansion" {
		t.Errorf("projects not resolved: %v", res.Projects)
	}
}
