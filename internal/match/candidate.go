package match

import "sort"

// MinSuggestionScore is the similarity a candidate needs to be suggested.
const MinSuggestionScore = 0.6

// Candidate is a name scored against a query.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is sorted by descending score, then by name.
type CandidateList []Candidate

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns at most n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 || n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var out CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			out = append(out, cand)
		}
	}

	return out
}

// Names returns the candidate names in order.
func (c CandidateList) Names() []string {
	if len(c) == 0 {
		return nil
	}

	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Name
	}

	return out
}

// Rank scores every name against query. Duplicate names are scored once.
func Rank(query string, names []string) CandidateList {
	norm := NormalizeName(query)
	seen := make(map[string]struct{}, len(names))
	out := make(CandidateList, 0, len(names))

	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}

		seen[n] = struct{}{}
		out = append(out, Candidate{Name: n, Score: Similarity(norm, NormalizeName(n))})
	}

	sort.Sort(out)

	return out
}

// Suggest returns up to limit names close enough to query to be worth
// proposing, best first. A negative limit returns all of them.
func Suggest(query string, names []string, limit int) []string {
	return Rank(query, names).AboveThreshold(MinSuggestionScore).Top(limit).Names()
}
