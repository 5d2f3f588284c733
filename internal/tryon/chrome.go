package tryon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ChromeConfig controls the real browser session. The selectors default to
// the Streamlit test ids the remote app renders, with generic fallbacks in
// the snapshot script for non-Streamlit layouts.
type ChromeConfig struct {
	Headless  bool
	NoSandbox bool

	FileInputSelector string
	WaitForControls   time.Duration
	UploadSettle      time.Duration
}

func (c ChromeConfig) withDefaults() ChromeConfig {
	if c.FileInputSelector == "" {
		c.FileInputSelector = `input[type="file"]`
	}
	if c.WaitForControls <= 0 {
		c.WaitForControls = 15 * time.Second
	}
	if c.UploadSettle <= 0 {
		c.UploadSettle = 1200 * time.Millisecond
	}
	return c
}

// NewChromeFactory returns a SessionFactory launching one isolated Chrome
// per job. Launch failure is fatal and surfaces at the factory call.
func NewChromeFactory(cfg ChromeConfig) SessionFactory {
	cfg = cfg.withDefaults()

	return func(ctx context.Context) (Session, error) {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", cfg.Headless),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-accelerated-2d-canvas", true),
			chromedp.Flag("no-zygote", true),
		)
		if cfg.NoSandbox {
			opts = append(opts, chromedp.NoSandbox)
		}

		allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
		tabCtx, cancelTab := chromedp.NewContext(allocCtx)

		// Starts the browser; a missing or broken Chrome fails here.
		if err := chromedp.Run(tabCtx); err != nil {
			cancelTab()
			cancelAlloc()
			return nil, err
		}

		return &chromeSession{
			cfg:        cfg,
			ctx:        tabCtx,
			cancelTab:  cancelTab,
			cancelAll:  cancelAlloc,
			httpClient: &http.Client{Timeout: 30 * time.Second},
		}, nil
	}
}

type chromeSession struct {
	cfg        ChromeConfig
	ctx        context.Context
	cancelTab  context.CancelFunc
	cancelAll  context.CancelFunc
	httpClient *http.Client
}

func (s *chromeSession) Navigate(url string) error {
	// The tunnel interstitial is skipped with the ngrok bypass header.
	headers := network.Headers{"ngrok-skip-browser-warning": "true"}

	return chromedp.Run(s.ctx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (s *chromeSession) UploadInputs(targetPath, sourcePath string) error {
	// Bounded wait for the upload controls so an incompatible page fails
	// fast instead of hanging until the job deadline.
	waitCtx, cancel := context.WithTimeout(s.ctx, s.cfg.WaitForControls)
	defer cancel()
	if err := chromedp.Run(waitCtx,
		chromedp.WaitReady(s.cfg.FileInputSelector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadControlsNotFound, err)
	}

	var nodes []*cdp.Node
	if err := chromedp.Run(s.ctx,
		chromedp.Nodes(s.cfg.FileInputSelector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	); err != nil {
		return fmt.Errorf("tryon: locate upload controls: %w", err)
	}

	if len(nodes) < 2 {
		return fmt.Errorf("%w: found %d", ErrUploadControlsNotFound, len(nodes))
	}

	// Fixed order: first control takes the customer photo, second the
	// style reference.
	for i, p := range []string{targetPath, sourcePath} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("tryon: resolve upload path: %w", err)
		}
		if err := chromedp.Run(s.ctx,
			dom.SetFileInputFiles([]string{abs}).WithNodeID(nodes[i].NodeID),
		); err != nil {
			return fmt.Errorf("tryon: upload file %d: %w", i+1, err)
		}
		// Settle after each upload: the page re-renders reactively and
		// exposes no event to wait on.
		if err := sleep(s.ctx, s.cfg.UploadSettle); err != nil {
			return err
		}
	}

	return nil
}

const clickRunJS = `(() => {
	const buttons = Array.from(document.querySelectorAll('button'));
	const run = buttons.find(b => (b.innerText || '').toLowerCase().includes('run'));
	if (!run) return false;
	run.click();
	return true;
})()`

func (s *chromeSession) ClickRun() error {
	var clicked bool
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(clickRunJS, &clicked)); err != nil {
		return fmt.Errorf("tryon: click run: %w", err)
	}
	if !clicked {
		return fmt.Errorf("tryon: no button with visible text containing \"run\"")
	}
	return nil
}

func (s *chromeSession) ScrollOnce() error {
	return chromedp.Run(s.ctx,
		chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil),
	)
}

const snapshotJS = `(() => {
	let boxes = Array.from(document.querySelectorAll('div[data-testid="stImageContainer"]'));
	if (boxes.length === 0) boxes = Array.from(document.querySelectorAll('figure'));
	return boxes.map(box => {
		const img = box.querySelector('img');
		const cap = box.querySelector('[data-testid="stImageCaption"]') || box.querySelector('figcaption');
		return {
			src: img && img.src ? img.src : '',
			caption: cap && cap.innerText ? cap.innerText.trim() : '',
		};
	});
})()`

func (s *chromeSession) Snapshot() ([]Candidate, error) {
	var candidates []Candidate
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(snapshotJS, &candidates)); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *chromeSession) Fetch(src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(s.ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("ngrok-skip-browser-warning", "true")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (s *chromeSession) Close() {
	s.cancelTab()
	s.cancelAll()
}

var _ Session = (*chromeSession)(nil)
