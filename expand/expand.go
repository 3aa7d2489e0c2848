package expand

import (
	"sort"
	"strings"
)

// DefaultTable maps short terms and abbreviations to related domain
// phrases. Keys are matched case-insensitively: single-word keys match
// whole query tokens, multi-word keys match as substrings.
var DefaultTable = map[string]string{
	"ml":               "machine learning",
	"ai":               "artificial intelligence",
	"nlp":              "natural language processing",
	"renewable energy": "renewable energy sustainable energy clean energy solar wind",
	"wireless":         "wireless communication telecommunication",
	"quantum":          "quantum computing quantum mechanics quantum physics",
	"data":             "data science data analytics big data data mining",
	"cyber":            "cybersecurity security network security information security",
	"cloud":            "cloud computing distributed systems",
	"iot":              "internet of things iot embedded systems sensors",
	"blockchain":       "blockchain distributed ledger cryptocurrency",
}

// Expander rewrites queries by appending related terms from a static
// table. It is pure and deterministic: no network, no randomness, and
// expansion is idempotent (expanding an expanded query is stable).
type Expander struct {
	table map[string][]string
	keys  []string // sorted for deterministic iteration
}

// NewExpander builds an Expander from a term table. Keys are lowercased;
// values are split into tokens. A nil table yields an expander that
// returns queries unchanged.
func NewExpander(table map[string]string) *Expander {
	e := &Expander{table: make(map[string][]string, len(table))}
	for key, phrase := range table {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		e.table[k] = strings.Fields(phrase)
		e.keys = append(e.keys, k)
	}
	sort.Strings(e.keys)
	return e
}

// NewDefaultExpander builds an Expander over DefaultTable.
func NewDefaultExpander() *Expander {
	return NewExpander(DefaultTable)
}

// Expand returns the query with every matched expansion phrase appended.
// Original terms come first, appended terms are deduplicated
// case-insensitively, and order is preserved. Matching repeats until no
// new terms appear, which makes the operation idempotent: a second call
// on the output returns it unchanged.
func (e *Expander) Expand(query string) string {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return query
	}

	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		lt := strings.ToLower(tok)
		if !seen[lt] {
			seen[lt] = true
		}
		out = append(out, tok)
	}

	for changed := true; changed; {
		changed = false
		lowered := strings.ToLower(strings.Join(out, " "))
		for _, key := range e.keys {
			if !e.matches(lowered, seen, key) {
				continue
			}
			for _, term := range e.table[key] {
				lt := strings.ToLower(term)
				if seen[lt] {
					continue
				}
				seen[lt] = true
				out = append(out, term)
				changed = true
			}
		}
	}

	return strings.Join(out, " ")
}

// matches reports whether a table key applies to the current query.
// Multi-word keys use substring matching so phrases like "renewable
// energy" hit; single-word keys require an exact token so "ml" does not
// fire inside "html".
func (e *Expander) matches(lowered string, tokens map[string]bool, key string) bool {
	if strings.ContainsRune(key, ' ') {
		return strings.Contains(lowered, key)
	}
	return tokens[key]
}
