// Package tryon drives the remote hair try-on application. The remote
// system is an interactive UI with no published API: jobs are executed by
// automating a headless browser through a fixed interaction sequence and
// detecting the output heuristically from rendered page content.
package tryon

import "context"

// Job is one try-on request. Jobs are request-scoped: each gets its own
// browser session and its own output file, and nothing is persisted.
type Job struct {
	RemoteURL  string // remote try-on app, typically behind an ngrok tunnel
	TargetPath string // customer's photo
	SourcePath string // desired style/color reference
	OutputDir  string

	Params Params
}

// Params are the generation knobs the structured API accepts. The browser
// pipeline ignores them (the scraped UI exposes no controls for them).
type Params struct {
	Seed            int
	SampleStep      int
	T               int
	ErodeKernelSize int
}

// withDefaults fills zero values with the remote model's defaults.
func (p Params) withDefaults() Params {
	if p.Seed == 0 {
		p.Seed = 1234
	}
	if p.SampleStep == 0 {
		p.SampleStep = 1
	}
	if p.T == 0 {
		p.T = 500
	}
	if p.ErodeKernelSize == 0 {
		p.ErodeKernelSize = 7
	}
	return p
}

// Result points at the downloaded output image.
type Result struct {
	OutputPath string `json:"outputPath"`
	OutputURL  string `json:"outputUrl"`
}

// Provider runs a try-on job end to end. The scraping pipeline is one
// implementation; a structured API client can replace it without touching
// the HTTP layer.
type Provider interface {
	Run(ctx context.Context, job Job) (*Result, error)
}
