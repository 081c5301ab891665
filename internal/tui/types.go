package tui

type screen int

const (
	screenLogin screen = iota
	screenDirectory
	screenProfile
)

// Routes mirror the dashboard's navigation targets. A navigateMsg carrying
// one of these is a control-flow signal handled by the app shell's router,
// never by an error branch.
const (
	routeDashboard = "/dashboard"
	routeStudents  = "/students/"
)

const heroTagline = "The admissions desk, in your terminal."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
)

// profileMode tracks which composer owns the keyboard on the profile screen.
type profileMode int

const (
	profileModeView profileMode = iota
	profileModeNotes
	profileModeLog
)

// summaryFallback replaces the summary text when generation fails. Fixed and
// human-readable; still rendered through the constrained markdown path.
const summaryFallback = "## AI Summary Unavailable\n\nThe summary service could not be reached. Please try again later."

// communicationLimit bounds the profile's log fetch. The backend defaults to
// its own (small) limit, too few for the timeline view.
const communicationLimit = 10
