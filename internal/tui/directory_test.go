package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asoni/admitdesk/internal/crm"
)

func directoryFixture() []crm.Student {
	india, nigeria := "India", "Nigeria"
	return []crm.Student{
		{ID: "s1", Name: "Asha Rao", Email: "asha@example.com", Country: &india, ApplicationStatus: crm.StatusApplying, Tags: []string{crm.TagHighIntent}},
		{ID: "s2", Name: "Bola Ade", Email: "bola@example.com", Country: &nigeria, ApplicationStatus: crm.StatusExploring},
		{ID: "s3", Name: "Chitra Nair", Email: "chitra@example.com", Country: &india, ApplicationStatus: crm.StatusApplying, Tags: []string{crm.TagHighIntent, crm.TagNeedsEssayHelp}},
	}
}

func loadedDirectory() directoryModel {
	d := newDirectoryModel()
	d.handleStudentsLoaded(studentsLoadedMsg{students: directoryFixture()})
	return d
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDirectoryLoadFailureIsTerminal(t *testing.T) {
	d := newDirectoryModel()
	d.handleStudentsLoaded(studentsLoadedMsg{err: errors.New("connection refused")})

	assert.False(t, d.loaded)
	assert.Contains(t, d.view("·"), "connection refused")
	assert.Nil(t, d.handleKey(keyRune('s')), "keys are inert in the terminal error state")
}

func TestDirectoryStatusCycling(t *testing.T) {
	d := loadedDirectory()
	require.Len(t, d.filtered, 3)

	d.handleKey(keyRune('s'))
	assert.Equal(t, crm.StatusExploring, d.filters.Status)
	require.Len(t, d.filtered, 1)
	assert.Equal(t, "s2", d.filtered[0].ID)

	// Cycling wraps back to the pass-through sentinel.
	for i := 0; i < len(crm.KnownStatuses); i++ {
		d.handleKey(keyRune('s'))
	}
	assert.Equal(t, crm.FilterAll, d.filters.Status)
	assert.Len(t, d.filtered, 3)
}

func TestDirectoryTagTogglesCombineAsSuperset(t *testing.T) {
	d := loadedDirectory()

	d.handleKey(keyRune('2')) // High intent
	assert.Len(t, d.filtered, 2)

	d.handleKey(keyRune('3')) // Needs essay help
	require.Len(t, d.filtered, 1)
	assert.Equal(t, "s3", d.filtered[0].ID)

	d.handleKey(keyRune('3'))
	assert.Len(t, d.filtered, 2, "unchecking narrows back to one tag")
}

func TestDirectorySearchFiltersLive(t *testing.T) {
	d := loadedDirectory()

	d.handleKey(keyRune('/'))
	require.True(t, d.searching)
	d.handleKey(keyRune('c'))
	d.handleKey(keyRune('h'))

	assert.Equal(t, "ch", d.filters.Search)
	require.Len(t, d.filtered, 1)
	assert.Equal(t, "Chitra Nair", d.filtered[0].Name)

	d.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, d.searching, "enter settles the search without clearing it")
	assert.Len(t, d.filtered, 1)
}

func TestDirectoryClearResetsEverythingAtOnce(t *testing.T) {
	d := loadedDirectory()
	d.handleKey(keyRune('/'))
	d.handleKey(keyRune('a'))
	d.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	d.handleKey(keyRune('s'))
	d.handleKey(keyRune('2'))
	d.handleKey(keyRune('c'))
	require.NotEqual(t, 3, len(d.filtered))

	d.handleKey(keyRune('x'))

	assert.Equal(t, crm.NewFilters(), d.filters)
	assert.Empty(t, d.searchInput.Value())
	assert.Len(t, d.filtered, 3)
}

func TestDirectoryEnterNavigatesToSelectedStudent(t *testing.T) {
	d := loadedDirectory()

	cmd := d.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(navigateMsg)
	require.True(t, ok)
	assert.Equal(t, routeStudents+"s1", msg.route)
}

func TestDirectoryCursorClampsWhenFilterShrinksList(t *testing.T) {
	d := loadedDirectory()
	d.table.SetCursor(2)

	d.handleKey(keyRune('2')) // two students carry High intent

	id, ok := d.selectedStudentID()
	require.True(t, ok)
	assert.Equal(t, "s3", id)
}

func TestDirectoryStatsFailureDegradesStripOnly(t *testing.T) {
	d := loadedDirectory()
	d.handleStatsLoaded(statsLoadedMsg{err: errors.New("500")})

	assert.Equal(t, "Stats unavailable", d.statsErr)
	assert.True(t, d.loaded, "the table keeps working without stats")
}

func TestDirectoryStatsStripShowsCounts(t *testing.T) {
	d := loadedDirectory()
	d.handleStatsLoaded(statsLoadedMsg{stats: &crm.StudentStats{
		ActiveStudents: 12, ApplyingStage: 4, NeedsEssayHelp: 3, HighIntent: 5, NotContactedRecently: 2,
	}})

	strip := d.statsView()
	assert.Contains(t, strip, "12")
	assert.Contains(t, strip, "High intent")
}
