package outcome

import "strings"

// StandardSeparator splits a composite mastery key into the owning outcome's
// durable id and the assessment-standard code.
const StandardSeparator = "#"

// IsAssessmentStandard reports whether ref names an assessment standard
// ("AS1.1") rather than a top-level outcome ("O1"). Any reference containing
// a dot is an assessment standard.
func IsAssessmentStandard(ref string) bool {
	return strings.Contains(ref, ".")
}

// Partition splits refs into plain outcome codes and assessment-standard
// codes. Empty and duplicate references are dropped; first-seen order is kept.
func Partition(refs []string) (plain, standards []string) {
	seen := make(map[string]bool, len(refs))
	for _, r := range refs {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		if IsAssessmentStandard(r) {
			standards = append(standards, r)
		} else {
			plain = append(plain, r)
		}
	}
	return plain, standards
}

// CompositeKey returns the mastery key used for assessment-standard level
// mastery: "<durableID>#<code>".
func CompositeKey(durableID, standardCode string) string {
	return durableID + StandardSeparator + standardCode
}

// SplitKey is the inverse of CompositeKey. For a plain key it returns the key
// and an empty code.
func SplitKey(key string) (durableID, standardCode string) {
	id, code, found := strings.Cut(key, StandardSeparator)
	if !found {
		return key, ""
	}
	return id, code
}
