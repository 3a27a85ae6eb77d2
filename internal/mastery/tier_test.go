package mastery

import "testing"

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{0, TierStruggling},
		{0.3, TierStruggling},
		{0.3999, TierStruggling},
		{0.4, TierProgress},
		{0.59, TierProgress},
		{0.6, TierGood},
		{0.79, TierGood},
		{0.8, TierMastered},
		{1, TierMastered},
	}
	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.want {
			t.Errorf("TierFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestIsCritical_MatchesStrugglingTier(t *testing.T) {
	for _, s := range []float64{0, 0.1, 0.39, 0.4, 0.41, 0.7, 1} {
		if IsCritical(s) != (TierFor(s) == TierStruggling) {
			t.Errorf("IsCritical(%v) disagrees with TierFor", s)
		}
	}
}

func TestDefaultScoreIsStruggling(t *testing.T) {
	if DefaultScore != 0.3 {
		t.Fatalf("DefaultScore = %v, want 0.3", DefaultScore)
	}
	if TierFor(DefaultScore) != TierStruggling {
		t.Errorf("default score tier = %s", TierFor(DefaultScore))
	}
}

func TestPhrase(t *testing.T) {
	if TierMastered.Phrase() == "" || Tier("bogus").Phrase() != "mastery is unknown" {
		t.Error("unexpected phrase")
	}
}
