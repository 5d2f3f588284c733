package tryon

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Options holds the pipeline cadence. All waits are time-based polling:
// the remote UI exposes no completion events to subscribe to.
type Options struct {
	Timeout time.Duration // hard ceiling for the whole job

	ClickAttempts   int // run-button click retries
	ClickRetryDelay time.Duration

	ScrollCount int // viewport scrolls to force lazy rendering
	ScrollDelay time.Duration

	PollInterval    time.Duration
	MaxPollAttempts int

	Selector Selector
}

func DefaultOptions() Options {
	return Options{
		Timeout:         90 * time.Second,
		ClickAttempts:   3,
		ClickRetryDelay: time.Second,
		ScrollCount:     20,
		ScrollDelay:     700 * time.Millisecond,
		PollInterval:    time.Second,
		MaxPollAttempts: 120,
		Selector:        DefaultSelector(),
	}
}

// Pipeline executes try-on jobs by driving a browser Session through the
// remote UI: upload both images, click run, force lazy content to render,
// poll for the output, download it. One session per job, never reused.
type Pipeline struct {
	newSession SessionFactory
	opts       Options
}

func NewPipeline(factory SessionFactory, opts Options) *Pipeline {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.ClickAttempts <= 0 {
		opts.ClickAttempts = 1
	}
	if opts.MaxPollAttempts <= 0 {
		opts.MaxPollAttempts = DefaultOptions().MaxPollAttempts
	}
	if len(opts.Selector.Keywords) == 0 && opts.Selector.FallbackMin == 0 {
		opts.Selector = DefaultSelector()
	}
	return &Pipeline{
		newSession: factory,
		opts:       opts,
	}
}

func (p *Pipeline) Run(ctx context.Context, job Job) (*Result, error) {
	if job.RemoteURL == "" {
		return nil, fmt.Errorf("tryon: remote app URL is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	sess, err := p.newSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}
	// The session must be released on every exit path below.
	defer sess.Close()

	if err := sess.Navigate(job.RemoteURL); err != nil {
		return nil, fmt.Errorf("tryon: navigate %s: %w", job.RemoteURL, err)
	}

	if err := sess.UploadInputs(job.TargetPath, job.SourcePath); err != nil {
		return nil, err
	}

	if err := p.clickRun(ctx, sess); err != nil {
		return nil, err
	}

	if err := p.forceRender(ctx, sess); err != nil {
		return nil, err
	}

	src, err := p.pollForResult(ctx, sess)
	if err != nil {
		return nil, err
	}

	return p.download(sess, job, src)
}

func (p *Pipeline) clickRun(ctx context.Context, sess Session) error {
	var lastErr error
	for attempt := 1; attempt <= p.opts.ClickAttempts; attempt++ {
		lastErr = sess.ClickRun()
		if lastErr == nil {
			return nil
		}
		log.Printf("tryon: run click attempt %d failed: %v", attempt, lastErr)
		if attempt < p.opts.ClickAttempts {
			if err := sleep(ctx, p.opts.ClickRetryDelay); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrRunControl, p.opts.ClickAttempts, lastErr)
}

func (p *Pipeline) forceRender(ctx context.Context, sess Session) error {
	for i := 0; i < p.opts.ScrollCount; i++ {
		if err := sess.ScrollOnce(); err != nil {
			return fmt.Errorf("tryon: scroll: %w", err)
		}
		if err := sleep(ctx, p.opts.ScrollDelay); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) pollForResult(ctx context.Context, sess Session) (string, error) {
	for attempt := 0; attempt < p.opts.MaxPollAttempts; attempt++ {
		candidates, err := sess.Snapshot()
		if err == nil {
			if src, ok := p.opts.Selector.Pick(candidates); ok {
				return src, nil
			}
		} else {
			log.Printf("tryon: snapshot attempt %d failed: %v", attempt+1, err)
		}

		if err := sleep(ctx, p.opts.PollInterval); err != nil {
			return "", err
		}
	}
	return "", ErrResultNotFound
}

func (p *Pipeline) download(sess Session, job Job, src string) (*Result, error) {
	var data []byte
	var err error

	if strings.HasPrefix(src, "data:") {
		data, err = decodeDataURI(src)
	} else {
		data, err = sess.Fetch(src)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	return writeResult(job.OutputDir, data)
}

// writeResult persists the output bytes under a collision-free name and
// returns the pair of references the client consumes.
func writeResult(outputDir string, data []byte) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	name := fmt.Sprintf("result_%s.png", uuid.NewString())
	outputPath := filepath.Join(outputDir, name)

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	return &Result{
		OutputPath: outputPath,
		OutputURL:  "/results/" + name,
	}, nil
}

func decodeDataURI(src string) ([]byte, error) {
	_, payload, ok := strings.Cut(src, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	return base64.StdEncoding.DecodeString(payload)
}

// sleep waits for d unless the job deadline fires first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("tryon: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

var _ Provider = (*Pipeline)(nil)
