package services

import "errors"

// Pipeline stage error kinds. The worker records stage failures on the
// record itself; only persistence failures escape to the queue layer.
var (
	ErrExtraction  = errors.New("text extraction failed")
	ErrService     = errors.New("structured extraction service failed")
	ErrPersistence = errors.New("persistence failed")
)

const maxErrorMessageLen = 500

// boundErrorMessage keeps stored error messages human-readable and bounded.
func boundErrorMessage(msg string) string {
	if len(msg) > maxErrorMessageLen {
		return msg[:maxErrorMessageLen]
	}
	return msg
}
