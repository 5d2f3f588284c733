package tryon

import "strings"

// Candidate is one rendered image with whatever caption text sits next to
// it. The remote UI offers no structured "this is the result" signal, so
// captions are all there is to go on.
type Candidate struct {
	Src     string `json:"src"`
	Caption string `json:"caption"`
}

// Selector picks the output image from a page snapshot. Priority order:
// first image whose caption contains any keyword; otherwise, once at least
// FallbackMin images are rendered, the last one (inputs render first, so
// the result lands at the bottom); otherwise nothing yet, keep polling.
type Selector struct {
	Keywords    []string
	FallbackMin int
}

func DefaultSelector() Selector {
	return Selector{
		Keywords:    []string{"filled", "result", "output", "final"},
		FallbackMin: 3,
	}
}

// Pick returns the selected image source and whether a selection was made.
func (s Selector) Pick(candidates []Candidate) (string, bool) {
	for _, c := range candidates {
		if c.Src == "" {
			continue
		}
		caption := strings.ToLower(c.Caption)
		for _, kw := range s.Keywords {
			if strings.Contains(caption, kw) {
				return c.Src, true
			}
		}
	}

	if s.FallbackMin > 0 && len(candidates) >= s.FallbackMin {
		if last := candidates[len(candidates)-1]; last.Src != "" {
			return last.Src, true
		}
	}

	return "", false
}
