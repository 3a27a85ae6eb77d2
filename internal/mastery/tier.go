package mastery

// Tier is the qualitative band a mastery score falls into.
type Tier string

const (
	TierStruggling Tier = "struggling"
	TierProgress   Tier = "progress"
	TierGood       Tier = "good"
	TierMastered   Tier = "mastered"
)

// Tier lower bounds. Each bound is inclusive.
const (
	// StrugglingThreshold separates struggling outcomes from the rest. It is
	// also the cutoff for counting an outcome as critical in review stats.
	StrugglingThreshold = 0.4
	GoodThreshold       = 0.6
	MasteredThreshold   = 0.8
)

// DefaultScore is the mastery assumed for an outcome with no tracked score.
// It means "unknown", not "zero".
const DefaultScore = 0.3

// TierFor returns the tier for a mastery score.
func TierFor(score float64) Tier {
	switch {
	case score >= MasteredThreshold:
		return TierMastered
	case score >= GoodThreshold:
		return TierGood
	case score >= StrugglingThreshold:
		return TierProgress
	default:
		return TierStruggling
	}
}

// IsCritical reports whether a score is low enough to flag the outcome as
// critical.
func IsCritical(score float64) bool {
	return score < StrugglingThreshold
}

// Phrase returns a short, learner-facing description of the tier.
func (t Tier) Phrase() string {
	switch t {
	case TierStruggling:
		return "mastery is low"
	case TierProgress:
		return "mastery is still developing"
	case TierGood:
		return "mastery is good"
	case TierMastered:
		return "mastery is strong"
	default:
		return "mastery is unknown"
	}
}
