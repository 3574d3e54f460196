package analysis

import (
	"regexp"
	"strings"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// MetricsAnalyzer computes deterministic text measurements from normalized
// text. Pure function of its input and the injected lexicons: the same text
// always yields the same snapshot.
type MetricsAnalyzer struct {
	lexicons *Lexicons

	fillerWords map[string]bool
	fillerPhrs  []string
	positive    map[string]bool
	negative    map[string]bool
}

// NewMetricsAnalyzer builds an analyzer over the given lexicons.
func NewMetricsAnalyzer(lex *Lexicons) *MetricsAnalyzer {
	a := &MetricsAnalyzer{
		lexicons:    lex,
		fillerWords: make(map[string]bool),
		positive:    make(map[string]bool),
		negative:    make(map[string]bool),
	}
	for _, f := range lex.FillerWords {
		if strings.Contains(f, " ") {
			a.fillerPhrs = append(a.fillerPhrs, f)
		} else {
			a.fillerWords[f] = true
		}
	}
	for _, w := range lex.PositiveSentiment {
		a.positive[w] = true
	}
	for _, w := range lex.NegativeSentiment {
		a.negative[w] = true
	}
	return a
}

// Analyze produces the metrics snapshot for one response text.
func (a *MetricsAnalyzer) Analyze(text string) *model.MetricsSnapshot {
	words := strings.Fields(text)
	sentences := splitSentences(text)
	tokens := tokenize(words)
	lower := strings.ToLower(text)

	snap := &model.MetricsSnapshot{
		WordCount:     len(words),
		SentenceCount: len(sentences),
	}

	unique := make(map[string]bool, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = true
	}
	snap.UniqueWordCount = len(unique)

	if len(sentences) > 0 {
		snap.AvgWordsPerSent = float64(len(words)) / float64(len(sentences))
	}

	snap.FillerWordCount = a.countFillers(tokens, lower)
	if len(words) > 0 {
		snap.FillerWordRatio = float64(snap.FillerWordCount) / float64(len(words))
	}

	snap.ReadabilityScore = readability(len(words), len(sentences))
	snap.SentimentScore = a.sentiment(tokens)
	a.structure(sentences, snap)
	a.confidence(lower, snap)

	return snap
}

// countFillers counts whole-word matches plus multi-word phrase occurrences.
func (a *MetricsAnalyzer) countFillers(tokens []string, lower string) int {
	count := 0
	for _, t := range tokens {
		if a.fillerWords[t] {
			count++
		}
	}
	for _, phrase := range a.fillerPhrs {
		count += strings.Count(lower, phrase)
	}
	return count
}

// readability is a Flesch-style estimate driven by average sentence length.
func readability(wordCount, sentenceCount int) float64 {
	if wordCount == 0 || sentenceCount == 0 {
		return 50.0
	}
	avg := float64(wordCount) / float64(sentenceCount)
	score := 206.835 - 1.015*avg
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// sentiment normalizes positive-minus-negative lexicon hits by word count
// and clamps to [-1,1].
func (a *MetricsAnalyzer) sentiment(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	pos, neg := 0, 0
	for _, t := range tokens {
		if a.positive[t] {
			pos++
		}
		if a.negative[t] {
			neg++
		}
	}
	score := float64(pos-neg) / float64(len(tokens))
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

// structure scores organization: intro cue in the first two sentences (30),
// a body/transition cue anywhere (40), conclusion cue in the last two (30),
// plus 10 bonus for three or more sentences, capped at 100.
func (a *MetricsAnalyzer) structure(sentences []string, snap *model.MetricsSnapshot) {
	head := sentences
	if len(head) > 2 {
		head = head[:2]
	}
	tail := sentences
	if len(tail) > 2 {
		tail = tail[len(tail)-2:]
	}

	snap.HasIntroduction = anySentenceHasCue(head, a.lexicons.IntroCues)
	snap.HasBody = anySentenceHasCue(sentences, a.lexicons.BodyCues)
	snap.HasConclusion = anySentenceHasCue(tail, a.lexicons.ConclusionCues)

	score := 0
	if snap.HasIntroduction {
		score += 30
	}
	if snap.HasBody {
		score += 40
	}
	if snap.HasConclusion {
		score += 30
	}
	if len(sentences) >= 3 {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	snap.StructureScore = score
}

// confidence compares hits from the positive-confidence lexicon against the
// hedging lexicon. With no hits on either side the score is a neutral 0.5.
func (a *MetricsAnalyzer) confidence(lower string, snap *model.MetricsSnapshot) {
	pos, neg := 0, 0
	for _, w := range a.lexicons.ConfidencePositive {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range a.lexicons.ConfidenceNegative {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	snap.ConfidenceIndicators = pos
	snap.HedgingIndicators = neg
	if pos+neg == 0 {
		snap.ConfidenceScore = 0.5
	} else {
		snap.ConfidenceScore = float64(pos) / float64(pos+neg)
	}
}

func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// tokenize lowercases words and strips surrounding punctuation so lexicon
// matches are whole-word.
func tokenize(words []string) []string {
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		t := strings.ToLower(strings.Trim(w, `.,!?;:"'()-`))
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func anySentenceHasCue(sentences, cues []string) bool {
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, cue := range cues {
			if strings.Contains(lower, cue) {
				return true
			}
		}
	}
	return false
}
