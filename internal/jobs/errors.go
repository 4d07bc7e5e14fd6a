package jobs

import "errors"

var ErrNotFound = errors.New("job not found")

const NotFoundMessage = "Job not found"
