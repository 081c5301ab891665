package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func fixtureStudents() []Student {
	return []Student{
		{ID: "1", Name: "Aisha Khan", Country: strptr("India"), ApplicationStatus: StatusApplying, Tags: []string{TagHighIntent, TagNeedsEssayHelp}},
		{ID: "2", Name: "Ben Okafor", Country: strptr("Nigeria"), ApplicationStatus: StatusExploring, Tags: []string{TagHighIntent}},
		{ID: "3", Name: "Carlos Reyes", Country: strptr("Mexico"), ApplicationStatus: StatusApplying},
		{ID: "4", Name: "Dana Smith", ApplicationStatus: StatusSubmitted, Tags: []string{TagNotContacted}},
	}
}

func TestFiltersDefaultPassThrough(t *testing.T) {
	students := fixtureStudents()
	got := NewFilters().Apply(students)
	assert.Len(t, got, len(students))
}

func TestSearchIsCaseInsensitiveNameSubstring(t *testing.T) {
	f := NewFilters()
	f.Search = "oKAf"
	got := f.Apply(fixtureStudents())
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	// Search never matches email or country.
	f.Search = "nigeria"
	assert.Empty(t, f.Apply(fixtureStudents()))
}

func TestStatusAndCountryExactMatchWithSentinel(t *testing.T) {
	f := NewFilters()
	f.Status = StatusApplying
	got := f.Apply(fixtureStudents())
	require.Len(t, got, 2)

	f.Country = "Mexico"
	got = f.Apply(fixtureStudents())
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	f.Country = FilterAll
	assert.Len(t, f.Apply(fixtureStudents()), 2)
}

func TestTagFilterRequiresSuperset(t *testing.T) {
	f := NewFilters()
	f.Tags = []string{TagHighIntent}
	assert.Len(t, f.Apply(fixtureStudents()), 2)

	f.Tags = []string{TagHighIntent, TagNeedsEssayHelp}
	got := f.Apply(fixtureStudents())
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	// Students with a nil tag set fail any non-empty selection.
	f.Tags = []string{TagNotContacted}
	got = f.Apply(fixtureStudents())
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)
}

// The four predicates commute: applying them one at a time in any order
// yields the same set as the combined Match.
func TestPredicatesCommute(t *testing.T) {
	students := fixtureStudents()
	f := Filters{Search: "a", Status: StatusApplying, Country: "India", Tags: []string{TagHighIntent}}

	combined := f.Apply(students)

	orders := [][]Filters{
		{
			{Search: f.Search, Status: FilterAll, Country: FilterAll},
			{Status: f.Status, Country: FilterAll},
			{Status: FilterAll, Country: f.Country},
			{Status: FilterAll, Country: FilterAll, Tags: f.Tags},
		},
		{
			{Status: FilterAll, Country: FilterAll, Tags: f.Tags},
			{Status: FilterAll, Country: f.Country},
			{Status: f.Status, Country: FilterAll},
			{Search: f.Search, Status: FilterAll, Country: FilterAll},
		},
	}
	for _, order := range orders {
		stage := students
		for _, step := range order {
			stage = step.Apply(stage)
		}
		assert.Equal(t, combined, stage)
	}
}

func TestClearResetsEveryPredicate(t *testing.T) {
	f := Filters{Search: "x", Status: StatusSubmitted, Country: "India", Tags: []string{TagHighIntent}}
	cleared := f.Clear()
	assert.Equal(t, NewFilters(), cleared)
	assert.Len(t, cleared.Apply(fixtureStudents()), 4)
}

func TestToggleTag(t *testing.T) {
	base := []string{TagHighIntent}

	on := ToggleTag(base, TagNeedsEssayHelp, true)
	assert.ElementsMatch(t, []string{TagHighIntent, TagNeedsEssayHelp}, on)

	// Toggling an already-present tag on cannot duplicate it.
	again := ToggleTag(on, TagNeedsEssayHelp, true)
	assert.ElementsMatch(t, on, again)

	off := ToggleTag(on, TagHighIntent, false)
	assert.Equal(t, []string{TagNeedsEssayHelp}, off)

	// The input is left untouched so it can serve as the rollback snapshot.
	assert.Equal(t, []string{TagHighIntent}, base)
}

func TestCountriesDistinctFirstSeen(t *testing.T) {
	students := fixtureStudents()
	students = append(students, Student{ID: "5", Name: "Esha Rao", Country: strptr("India")})
	assert.Equal(t, []string{"India", "Nigeria", "Mexico"}, Countries(students))
}
