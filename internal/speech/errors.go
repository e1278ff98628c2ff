package speech

import "errors"

// error kinds raised by the pipeline; callers discriminate with errors.Is
// instead of matching message strings
var (
	// ErrEmptyScript means the source text is empty or unusable; raised at
	// pipeline entry, before any remote call
	ErrEmptyScript = errors.New("script is empty")

	// ErrQuotaExceeded means the run would breach the monthly character
	// quota; raised before any synthesis call
	ErrQuotaExceeded = errors.New("monthly character quota exceeded")

	// ErrSynthesis means the remote service rejected or failed a chunk
	// request; the whole run aborts since assembly needs every fragment
	ErrSynthesis = errors.New("speech synthesis failed")
)
