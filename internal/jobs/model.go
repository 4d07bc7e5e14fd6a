package jobs

import "time"

// Job is a posting owned by one company account.
type Job struct {
	ID          string
	Title       string
	Description string
	Location    string
	OwnerID     string
	OwnerName   string
	CreatedAt   time.Time
}

// Filter narrows a job listing. Empty fields are ignored.
type Filter struct {
	TitleContains     string
	Location          string
	LocationContains  string
	OwnerNameContains string
	OwnerID           string
}

// Patch carries the fields of a partial update; nil means unchanged.
type Patch struct {
	Title       *string
	Description *string
	Location    *string
}

func (p Patch) apply(job Job) (Job, []string) {
	var changed []string
	if p.Title != nil {
		job.Title = *p.Title
		changed = append(changed, "title")
	}
	if p.Description != nil {
		job.Description = *p.Description
		changed = append(changed, "description")
	}
	if p.Location != nil {
		job.Location = *p.Location
		changed = append(changed, "location")
	}
	return job, changed
}
