package matching

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrJobNotFound    = errors.New("job not found")
)
