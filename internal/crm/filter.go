package crm

import "strings"

// FilterAll is the sentinel meaning "no constraint", distinct from an empty
// value.
const FilterAll = "all"

// Filters is the directory's filter state. Zero values for Search and Tags
// and the FilterAll sentinel for Status/Country are all pass-through.
type Filters struct {
	Search  string
	Status  string
	Country string
	Tags    []string
}

// NewFilters returns the pass-through defaults.
func NewFilters() Filters {
	return Filters{Status: FilterAll, Country: FilterAll}
}

// Clear resets every predicate atomically.
func (f Filters) Clear() Filters {
	return NewFilters()
}

// Match is the conjunction of four independent predicates. They commute, so
// evaluation order is irrelevant; all must pass.
func (f Filters) Match(s Student) bool {
	return f.matchSearch(s) && f.matchStatus(s) && f.matchCountry(s) && f.matchTags(s)
}

// Apply returns the students passing every predicate, preserving order.
func (f Filters) Apply(students []Student) []Student {
	result := make([]Student, 0, len(students))
	for _, s := range students {
		if f.Match(s) {
			result = append(result, s)
		}
	}
	return result
}

// Text search: case-insensitive substring match against the name only.
func (f Filters) matchSearch(s Student) bool {
	query := strings.TrimSpace(f.Search)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), strings.ToLower(query))
}

func (f Filters) matchStatus(s Student) bool {
	if f.Status == "" || f.Status == FilterAll {
		return true
	}
	return s.ApplicationStatus == f.Status
}

func (f Filters) matchCountry(s Student) bool {
	if f.Country == "" || f.Country == FilterAll {
		return true
	}
	return s.Country != nil && *s.Country == f.Country
}

// Tag filter: the student's tag set must be a superset of every selected
// tag. An empty selection passes everything.
func (f Filters) matchTags(s Student) bool {
	for _, want := range f.Tags {
		if !s.HasTag(want) {
			return false
		}
	}
	return true
}

// Countries returns the distinct countries present in the list, in first-seen
// order, for the country filter cycle.
func Countries(students []Student) []string {
	seen := map[string]bool{}
	var result []string
	for _, s := range students {
		if s.Country == nil || *s.Country == "" || seen[*s.Country] {
			continue
		}
		seen[*s.Country] = true
		result = append(result, *s.Country)
	}
	return result
}
