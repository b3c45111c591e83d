package match

import (
	"reflect"
	"testing"
)

func TestRank(t *testing.T) {
	got := Rank("userId", []string{"name", "user_id", "user_name", "user_id"})

	if len(got) != 3 {
		t.Fatalf("Rank returned %d candidates, want 3 (duplicates collapsed)", len(got))
	}

	if got[0].Name != "user_id" || got[0].Score != 1.0 {
		t.Errorf("best = %+v, want user_id with score 1", got[0])
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Errorf("not sorted at %d: %v", i, got)
		}
	}
}

func TestRankTieBreaksByName(t *testing.T) {
	got := Rank("ab", []string{"ax", "aa"})

	if got[0].Name != "aa" || got[1].Name != "ax" {
		t.Errorf("tie not broken by name: %v", got)
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		names    []string
		limit    int
		expected []string
	}{
		{
			name:     "typo",
			query:    "adress",
			names:    []string{"name", "address", "age"},
			limit:    3,
			expected: []string{"address"},
		},
		{
			name:     "case and separators",
			query:    "userID",
			names:    []string{"id", "user_id", "username"},
			limit:    3,
			expected: []string{"user_id"},
		},
		{
			name:     "nested path limited",
			query:    "adress.city",
			names:    []string{"name", "address.zip", "address.city"},
			limit:    1,
			expected: []string{"address.city"},
		},
		{
			name:     "nothing close",
			query:    "zzz",
			names:    []string{"name", "address"},
			limit:    3,
			expected: nil,
		},
		{
			name:     "no candidates",
			query:    "name",
			names:    nil,
			limit:    3,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.query, tt.names, tt.limit)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Suggest(%q) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}

func TestCandidateListTop(t *testing.T) {
	c := CandidateList{{"a", 1}, {"b", 0.9}, {"c", 0.5}}

	if got := c.Top(2).Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Top(2) = %v", got)
	}

	if got := c.Top(-1); len(got) != 3 {
		t.Errorf("Top(-1) = %v", got)
	}

	if got := c.AboveThreshold(0.9).Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("AboveThreshold(0.9) = %v", got)
	}
}
