package applications

import "time"

type statusRequest struct {
	Status string `json:"status" form:"status"`
}

type applicationResponse struct {
	ID          string    `json:"id"`
	Applicant   string    `json:"applicant"`
	Job         string    `json:"job"`
	ResumeLink  string    `json:"resume_link"`
	ResumePages int       `json:"resume_pages"`
	CoverLetter string    `json:"cover_letter"`
	Status      Status    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

func toResponse(app Application) applicationResponse {
	return applicationResponse{
		ID:          app.ID,
		Applicant:   app.ApplicantID,
		Job:         app.JobID,
		ResumeLink:  app.ResumeLink,
		ResumePages: app.ResumePages,
		CoverLetter: app.CoverLetter,
		Status:      app.Status,
		AppliedAt:   app.AppliedAt,
	}
}
