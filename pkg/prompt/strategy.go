package prompt

// ContextStrategy may reshape the documents before they are rendered.
// It must not mutate its input.
type ContextStrategy interface {
	Apply(sources []Source) []Source
}

// VerbatimStrategy passes every document through unchanged.
type VerbatimStrategy struct{}

func (VerbatimStrategy) Apply(sources []Source) []Source {
	return sources
}

// MaxCharsStrategy caps the combined document content at Limit characters.
// Earlier documents are kept whole as long as possible; later ones are cut
// first and carry TruncatedMarker.
type MaxCharsStrategy struct {
	Limit int
}

func (s MaxCharsStrategy) Apply(sources []Source) []Source {
	if s.Limit <= 0 {
		return sources
	}

	out := make([]Source, 0, len(sources))
	remaining := s.Limit
	for _, src := range sources {
		runes := []rune(src.Content)
		switch {
		case len(runes) <= remaining:
			out = append(out, src)
			remaining -= len(runes)
		case remaining > 0:
			out = append(out, Source{Name: src.Name, Content: string(runes[:remaining]) + "\n" + TruncatedMarker})
			remaining = 0
		default:
			out = append(out, Source{Name: src.Name, Content: TruncatedMarker})
		}
	}
	return out
}

// StrategyFor returns MaxCharsStrategy when maxChars is positive.
func StrategyFor(maxChars int) ContextStrategy {
	if maxChars > 0 {
		return MaxCharsStrategy{Limit: maxChars}
	}
	return VerbatimStrategy{}
}
