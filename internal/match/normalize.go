package match

import (
	"strings"
	"unicode"
)

// NormalizeName folds a field name or dotted field path for fuzzy matching.
// Each dot-separated segment is tokenized on case changes and separators,
// lowercased and re-joined without separators, so "userId", "user_id" and
// "UserID" all become "userid". Segment boundaries are kept: "a.userId"
// becomes "a.userid".
func NormalizeName(s string) string {
	segs := strings.Split(s, ".")
	for i, seg := range segs {
		segs[i] = strings.Join(Tokenize(seg), "")
	}

	return strings.Join(segs, ".")
}

// Tokenize splits an identifier into lowercase tokens.
//
//   - "OrderID" -> ["order", "id"]
//   - "customer_name" -> ["customer", "name"]
//   - "XMLParser" -> ["xml", "parser"]
func Tokenize(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether a new token begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "orderID": split before 'I'.
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": split before 'P'.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
