package repair

import "errors"

var (
	ErrQueueClosed      = errors.New("remediation queue closed")
	ErrWatchStreamEnded = errors.New("pod watch stream ended")
	ErrTimeout          = errors.New("operation timed out")
	ErrUnknownMode      = errors.New("unknown remediation mode")
)
