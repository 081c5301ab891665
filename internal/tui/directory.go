package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asoni/admitdesk/internal/api"
	"github.com/asoni/admitdesk/internal/crm"
)

// directoryModel owns the authoritative in-memory student list for the
// session. Filtering is a pure pipeline over that list; nothing goes back to
// the server. A failed initial fetch is a terminal error state.
type directoryModel struct {
	table       table.Model
	searchInput textinput.Model

	students  []crm.Student
	filtered  []crm.Student
	filters   crm.Filters
	countries []string

	stats    *crm.StudentStats
	statsErr string

	loaded    bool
	loadErr   string
	searching bool
}

func newDirectoryModel() directoryModel {
	search := textinput.New()
	search.Placeholder = "Search by name…"
	search.CharLimit = 80
	search.Width = 36

	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Country", Width: 12},
		{Title: "Tags", Width: 6},
		{Title: "Last active", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = tableHeaderStyle
	styles.Selected = tableSelectedStyle
	t.SetStyles(styles)

	return directoryModel{
		table:       t,
		searchInput: search,
		filters:     crm.NewFilters(),
	}
}

// init fires the single list fetch plus the read-only stats fetch.
func (d *directoryModel) init(jobs *jobBus, backend api.Backend) tea.Cmd {
	return tea.Batch(
		jobs.Start(jobKindStudents, listStudentsJob(backend)),
		jobs.Start(jobKindStats, fetchStatsJob(backend)),
	)
}

func (d *directoryModel) handleStudentsLoaded(msg studentsLoadedMsg) {
	if msg.err != nil {
		d.loadErr = msg.err.Error()
		return
	}
	d.loaded = true
	d.students = msg.students
	d.countries = crm.Countries(msg.students)
	d.rebuildRows()
}

// Stats failure degrades only the stats strip.
func (d *directoryModel) handleStatsLoaded(msg statsLoadedMsg) {
	if msg.err != nil {
		d.statsErr = "Stats unavailable"
		return
	}
	d.stats = msg.stats
	d.statsErr = ""
}

func (d *directoryModel) rebuildRows() {
	d.filtered = d.filters.Apply(d.students)
	rows := make([]table.Row, 0, len(d.filtered))
	for _, s := range d.filtered {
		country := "—"
		if s.Country != nil && *s.Country != "" {
			country = *s.Country
		}
		lastActive := "—"
		if s.LastActive != nil {
			lastActive = s.LastActive.Format("2006-01-02")
		}
		rows = append(rows, table.Row{
			s.Name,
			s.Email,
			s.ApplicationStatus,
			country,
			strconv.Itoa(len(s.Tags)),
			lastActive,
		})
	}
	d.table.SetRows(rows)
	if cursor := d.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		d.table.SetCursor(len(rows) - 1)
	}
}

func (d *directoryModel) selectedStudentID() (string, bool) {
	cursor := d.table.Cursor()
	if cursor < 0 || cursor >= len(d.filtered) {
		return "", false
	}
	return d.filtered[cursor].ID, true
}

func (d *directoryModel) cycleStatus() {
	options := append([]string{crm.FilterAll}, crm.KnownStatuses...)
	d.filters.Status = nextOption(options, d.filters.Status)
	d.rebuildRows()
}

func (d *directoryModel) cycleCountry() {
	options := append([]string{crm.FilterAll}, d.countries...)
	d.filters.Country = nextOption(options, d.filters.Country)
	d.rebuildRows()
}

func nextOption(options []string, current string) string {
	for i, option := range options {
		if option == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (d *directoryModel) toggleTagFilter(tag string) {
	selected := false
	for _, t := range d.filters.Tags {
		if t == tag {
			selected = true
			break
		}
	}
	d.filters.Tags = crm.ToggleTag(d.filters.Tags, tag, !selected)
	d.rebuildRows()
}

// clearFilters resets all four predicates atomically.
func (d *directoryModel) clearFilters() {
	d.filters = d.filters.Clear()
	d.searchInput.SetValue("")
	d.rebuildRows()
}

func (d *directoryModel) handleKey(key tea.KeyMsg) tea.Cmd {
	if d.loadErr != "" {
		return nil
	}

	if d.searching {
		switch key.Type {
		case tea.KeyEnter, tea.KeyEsc:
			d.searching = false
			d.searchInput.Blur()
			return nil
		}
		var cmd tea.Cmd
		d.searchInput, cmd = d.searchInput.Update(key)
		d.filters.Search = d.searchInput.Value()
		d.rebuildRows()
		return cmd
	}

	switch key.String() {
	case "/":
		d.searching = true
		d.searchInput.Focus()
		return textinput.Blink
	case "s":
		d.cycleStatus()
		return nil
	case "c":
		d.cycleCountry()
		return nil
	case "1", "2", "3":
		idx := int(key.String()[0] - '1')
		if idx < len(crm.KnownTags) {
			d.toggleTagFilter(crm.KnownTags[idx])
		}
		return nil
	case "x":
		d.clearFilters()
		return nil
	case "enter":
		if id, ok := d.selectedStudentID(); ok {
			return navigateCmd(routeStudents + id)
		}
		return nil
	}

	var cmd tea.Cmd
	d.table, cmd = d.table.Update(key)
	return cmd
}

func navigateCmd(route string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{route: route}
	}
}

func (d *directoryModel) statsView() string {
	if d.statsErr != "" {
		return helperStyle.Render(d.statsErr)
	}
	if d.stats == nil {
		return helperStyle.Render("Loading stats…")
	}
	cells := []string{
		statCell("Active", d.stats.ActiveStudents),
		statCell("Applying", d.stats.ApplyingStage),
		statCell("Essay help", d.stats.NeedsEssayHelp),
		statCell("High intent", d.stats.HighIntent),
		statCell("Not contacted", d.stats.NotContactedRecently),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func statCell(label string, value int) string {
	return statCellStyle.Render(fmt.Sprintf("%s %s", statValueStyle.Render(strconv.Itoa(value)), label))
}

func (d *directoryModel) filterSummary() string {
	parts := []string{}
	if strings.TrimSpace(d.filters.Search) != "" {
		parts = append(parts, fmt.Sprintf("name~%q", d.filters.Search))
	}
	if d.filters.Status != crm.FilterAll {
		parts = append(parts, "status="+d.filters.Status)
	}
	if d.filters.Country != crm.FilterAll {
		parts = append(parts, "country="+d.filters.Country)
	}
	for _, tag := range d.filters.Tags {
		parts = append(parts, "tag="+tag)
	}
	if len(parts) == 0 {
		return helperStyle.Render(fmt.Sprintf("%d students. / search, s status, c country, 1-3 tags, x clear", len(d.filtered)))
	}
	return helperStyle.Render(fmt.Sprintf("%d/%d students · %s · x clears", len(d.filtered), len(d.students), strings.Join(parts, " · ")))
}

func (d *directoryModel) view(spinnerView string) string {
	if d.loadErr != "" {
		return errorStyle.Render("Couldn't load the student directory: "+d.loadErr) + "\n" +
			helperStyle.Render("Restart AdmitDesk to try again.")
	}
	if !d.loaded {
		return helperStyle.Render(spinnerView + " Loading students…")
	}

	parts := []string{d.statsView()}
	if d.searching {
		parts = append(parts, d.searchInput.View())
	}
	parts = append(parts, d.table.View(), d.filterSummary())
	return strings.Join(parts, "\n\n")
}
