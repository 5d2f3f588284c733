package tryon

import "errors"

// Every failure aborts the whole job; nothing below retries except the
// run-button click. Resubmitting the job is the caller's remedy.
var (
	ErrBrowserLaunch          = errors.New("tryon: browser launch failed")
	ErrUploadControlsNotFound = errors.New("tryon: expected two file upload controls")
	ErrRunControl             = errors.New("tryon: run control could not be clicked")
	ErrResultNotFound         = errors.New("tryon: result image did not appear")
	ErrDownload               = errors.New("tryon: result download failed")
)
