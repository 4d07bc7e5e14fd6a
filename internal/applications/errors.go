package applications

import "errors"

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already exists")
	// ErrJobGone means the job was deleted before the application was stored.
	ErrJobGone = errors.New("job no longer exists")
)

const (
	NotFoundMessage       = "Application not found"
	DuplicateMessage      = "You have already applied to this job"
	DuplicateDetail       = "Duplicate application"
	UploadFailedMessage   = "Resume upload failed, please retry"
	ResumeTooLargeMessage = "Resume exceeds the maximum upload size."
	invalidJobMessageFmt  = "Invalid pk \"%s\" - object does not exist."
)
