package text

import "golang.org/x/text/unicode/bidi"

// DetectDirection runs the Unicode bidi algorithm over s and returns
// DirectionRTL when more runes fall in right-to-left runs than in
// left-to-right ones. Neutral text and ties are LTR.
func DetectDirection(s string) Direction {
	if s == "" {
		return DirectionLTR
	}

	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil {
		return DirectionLTR
	}

	var ltr, rtl int
	for i := range ordering.NumRuns() {
		run := ordering.Run(i)
		// Pos returns rune indices, end inclusive.
		start, end := run.Pos()
		switch run.Direction() {
		case bidi.RightToLeft:
			rtl += end - start + 1
		case bidi.LeftToRight:
			ltr += end - start + 1
		}
	}
	if rtl > ltr {
		return DirectionRTL
	}
	return DirectionLTR
}
