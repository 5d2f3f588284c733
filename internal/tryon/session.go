package tryon

import "context"

// Session is one isolated browser session, already bound to the job's
// deadline. The pipeline owns all retry, scroll and polling cadence; a
// session only executes single interactions, which keeps the heuristics
// testable against a fake without a real browser.
type Session interface {
	// Navigate opens the remote app and waits for the page to settle.
	Navigate(url string) error

	// UploadInputs files the target then the source image into the page's
	// two upload controls, in that order. Fewer than two controls is
	// ErrUploadControlsNotFound.
	UploadInputs(targetPath, sourcePath string) error

	// ClickRun clicks the button whose visible text contains "run"
	// (case-insensitive). Errors are retryable by the pipeline.
	ClickRun() error

	// ScrollOnce scrolls the page down by one viewport.
	ScrollOnce() error

	// Snapshot enumerates the currently rendered image containers.
	Snapshot() ([]Candidate, error)

	// Fetch downloads an image source URL as raw bytes.
	Fetch(src string) ([]byte, error)

	// Close releases the session. Must be safe on every exit path.
	Close()
}

// SessionFactory launches a new session under ctx.
type SessionFactory func(ctx context.Context) (Session, error)
