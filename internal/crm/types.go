// Package crm holds the records exchanged with the admissions backend and
// the pure filtering pipeline the directory view runs over them.
package crm

import "time"

// Known application statuses. The backend may grow this set, so the field
// stays an opaque string everywhere; these constants only drive the filter
// cycling in the UI.
const (
	StatusExploring    = "Exploring"
	StatusShortlisting = "Shortlisting"
	StatusApplying     = "Applying"
	StatusSubmitted    = "Submitted"
)

// KnownStatuses in the order the status filter cycles through them.
var KnownStatuses = []string{
	StatusExploring,
	StatusShortlisting,
	StatusApplying,
	StatusSubmitted,
}

// Well-known tags tracked by the stats endpoint.
const (
	TagNotContacted   = "Students not contacted in 7 days"
	TagHighIntent     = "High intent"
	TagNeedsEssayHelp = "Needs essay help"
)

// KnownTags in the order the tag checklist renders them.
var KnownTags = []string{
	TagNotContacted,
	TagHighIntent,
	TagNeedsEssayHelp,
}

// Communication types offered by the log composer. The backend accepts any
// string; these are the UI presets.
var CommunicationTypes = []string{"Email", "SMS", "Call", "Meeting"}

// MaxLogContentLen bounds log content at the input boundary only; the server
// does not enforce it.
const MaxLogContentLen = 200

// Student is both the directory summary and the full profile. List responses
// leave the profile-only fields (Phone, InternalNotes) empty.
type Student struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             *string    `json:"phone,omitempty"`
	Country           *string    `json:"country,omitempty"`
	ApplicationStatus string     `json:"application_status"`
	LastActive        *time.Time `json:"last_active,omitempty"`
	Tags              []string   `json:"tags,omitempty"`
	InternalNotes     *string    `json:"internal_notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HasTag reports set membership.
func (s Student) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ToggleTag returns the tag set with tag present when checked and absent
// otherwise. Membership is checked before insertion, so duplicates are
// impossible. The input slice is never mutated; callers keep it as the
// rollback snapshot.
func ToggleTag(tags []string, tag string, checked bool) []string {
	next := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		if t == tag {
			continue
		}
		next = append(next, t)
	}
	if checked {
		next = append(next, tag)
	}
	return next
}

// CommunicationLog is a single outreach record. Lists are most-recent-first
// and new entries are prepended, never re-sorted.
type CommunicationLog struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Type      string    `json:"type"`
	Content   *string   `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CommunicationLogCreate is the create-request payload.
type CommunicationLogCreate struct {
	StudentID string  `json:"student_id"`
	Type      string  `json:"type"`
	Content   *string `json:"content,omitempty"`
}

// StudentStats is computed entirely server-side and consumed read-only.
// Field names are camelCase on the wire.
type StudentStats struct {
	ActiveStudents       int `json:"activeStudents"`
	ApplyingStage        int `json:"applyingStage"`
	NeedsEssayHelp       int `json:"needsEssayHelp"`
	HighIntent           int `json:"highIntent"`
	NotContactedRecently int `json:"notContactedRecently"`
}
