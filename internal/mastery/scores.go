package mastery

// Scores maps mastery keys (durable outcome ids, or "<id>#<code>" composite
// keys) to EMA scores in [0, 1].
type Scores map[string]float64

// Resolve returns the score for an outcome reference, going through the
// reference-to-key mapping. The second result is false when the reference is
// unmapped or the key has no score, in which case DefaultScore is returned.
func (s Scores) Resolve(mapping map[string]string, ref string) (float64, bool) {
	key, ok := mapping[ref]
	if !ok {
		return DefaultScore, false
	}
	score, ok := s[key]
	if !ok {
		return DefaultScore, false
	}
	return clamp(score, 0, 1), true
}

// Mean returns the arithmetic mean of scores, or DefaultScore for none.
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return DefaultScore
	}
	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
