package analysis

// Lexicons holds the fixed word lists the metrics analyzer matches against.
// Loaded once at startup and injected, never mutated afterwards.
type Lexicons struct {
	FillerWords []string

	PositiveSentiment []string
	NegativeSentiment []string

	ConfidencePositive []string
	ConfidenceNegative []string

	IntroCues      []string
	BodyCues       []string
	ConclusionCues []string
}

// DefaultLexicons returns the standard English lexicons.
func DefaultLexicons() *Lexicons {
	return &Lexicons{
		FillerWords: []string{
			"um", "uh", "like", "you know", "so", "well", "actually",
			"basically", "literally", "obviously", "definitely", "totally",
			"really", "very", "quite", "sort of", "kind of",
		},

		PositiveSentiment: []string{
			"good", "great", "excellent", "successful", "achieved",
			"accomplished", "effective", "efficient", "improved",
		},
		NegativeSentiment: []string{
			"bad", "poor", "failed", "difficult", "challenging",
			"problem", "issue", "mistake", "error",
		},

		ConfidencePositive: []string{
			"confident", "certain", "sure", "definitely", "absolutely",
			"clearly", "obviously", "undoubtedly", "precisely",
		},
		ConfidenceNegative: []string{
			"maybe", "perhaps", "possibly", "might", "could be",
			"not sure", "uncertain", "unclear", "confused",
		},

		IntroCues:      []string{"first", "initially", "to begin", "starting"},
		BodyCues:       []string{"then", "next", "after", "following", "subsequently"},
		ConclusionCues: []string{"finally", "in conclusion", "to summarize", "overall"},
	}
}
