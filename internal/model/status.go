// Status values for job applications.
//
// Any status may be set directly by user action; there is no transition
// graph. New applications are always created as Applied.
package model

import "fmt"

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
	StatusGhosted   Status = "Ghosted"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusDraft, StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusGhosted:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsClosed returns true for Rejected and Ghosted. Closed applications are
// excluded from follow-up reminders.
func IsClosed(s Status) bool {
	return s == StatusRejected || s == StatusGhosted
}

// IsPositive returns true for the statuses that count toward the interview
// rate (Interview and Offer).
func IsPositive(s Status) bool {
	return s == StatusInterview || s == StatusOffer
}

// ActiveStatuses is the set matched by the "Active" list filter.
var ActiveStatuses = []Status{StatusApplied, StatusInterview}
