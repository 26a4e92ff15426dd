package lang

// Classification is the result of scoring evidence for a document.
type Classification struct {
	Lang          Language
	Score         int
	TotalScore    int
	Confidence    float64
	RunnerUp      Language
	RunnerUpScore int
}

// Classifier scores evidence and chooses a dominant language.
// Ties go to the language declared first.
type Classifier struct{}

func (Classifier) Classify(e *Evidence) Classification {
	if e == nil || len(e.hints) == 0 {
		return Classification{Lang: Text}
	}

	var scores [languageCount]int
	total := 0
	for _, h := range e.hints {
		if h.Score <= 0 || h.Lang == Text || !h.Lang.Valid() {
			continue
		}
		scores[h.Lang] += h.Score
		total += h.Score
	}

	best, bestScore := Text, 0
	runner, runnerScore := Text, 0
	for l := Text + 1; l < languageCount; l++ {
		score := scores[l]
		if score > bestScore {
			runner, runnerScore = best, bestScore
			best, bestScore = l, score
			continue
		}
		if score > runnerScore {
			runner, runnerScore = l, score
		}
	}

	conf := 0.0
	if total > 0 {
		conf = float64(bestScore) / float64(total)
	}
	return Classification{
		Lang:          best,
		Score:         bestScore,
		TotalScore:    total,
		Confidence:    conf,
		RunnerUp:      runner,
		RunnerUpScore: runnerScore,
	}
}
