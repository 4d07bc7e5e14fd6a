package applications

import "time"

// Status is the review state of an application. Any status may move to any other.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusReviewed  Status = "Reviewed"
	StatusInterview Status = "Interview"
	StatusRejected  Status = "Rejected"
	StatusHired     Status = "Hired"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusApplied, StatusReviewed, StatusInterview, StatusRejected, StatusHired}

func statusNames() []string {
	out := make([]string, len(Statuses))
	for i, s := range Statuses {
		out[i] = string(s)
	}
	return out
}

// Application links one applicant to one job.
type Application struct {
	ID          string
	ApplicantID string
	JobID       string
	JobOwnerID  string
	ResumeLink  string
	ResumeKey   string
	ResumePages int
	CoverLetter string
	Status      Status
	AppliedAt   time.Time
}

// Filter scopes a listing. Empty fields are ignored.
type Filter struct {
	ApplicantID string
	JobOwnerID  string
	JobID       string
}
