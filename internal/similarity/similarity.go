// Package similarity implements the bigram Dice coefficient the matchers
// score names with. Two shingle variants exist: per-word pairs for watchlist
// queries (word reordering tolerant) and whole-string pairs for blacklist
// fields (bridging across word boundaries).
package similarity

import "strings"

// punctuation stripped during normalization. Matches the set legal-name
// fields commonly differ by: quotes, commas, corporate punctuation.
const punctuation = "'\".,/#!$%^&*;:{}=-_`~()"

// Normalize lowercases s, strips punctuation, collapses runs of whitespace
// to single spaces, and trims.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Score returns the Dice coefficient over per-word bigram multisets of the
// normalized inputs. Bigrams never bridge word boundaries. Returns 1.0 for
// strings identical after normalization and 0.0 when either side is empty
// after normalization. Symmetric in its arguments.
func Score(a, b string) float64 {
	return dice(a, b, wordPairs)
}

// ScoreWhole is Score with bigrams computed over the whole normalized
// string, spaces included.
func ScoreWhole(a, b string) float64 {
	return dice(a, b, pairsOf)
}

func dice(a, b string, shingle func(string) []string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0.0
	}
	if na == nb {
		return 1.0
	}

	pa, pb := shingle(na), shingle(nb)
	total := len(pa) + len(pb)
	if total == 0 {
		return 0.0
	}

	remaining := make(map[string]int, len(pa))
	for _, p := range pa {
		remaining[p]++
	}
	intersection := 0
	for _, p := range pb {
		if remaining[p] > 0 {
			remaining[p]--
			intersection++
		}
	}
	return 2.0 * float64(intersection) / float64(total)
}

// wordPairs returns the bigrams of each word, concatenated.
func wordPairs(s string) []string {
	var pairs []string
	for _, word := range strings.Fields(s) {
		pairs = append(pairs, pairsOf(word)...)
	}
	return pairs
}

// pairsOf returns consecutive two-rune shingles. Rune-based so Cyrillic
// fields shingle correctly.
func pairsOf(s string) []string {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	pairs := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		pairs = append(pairs, string(runes[i:i+2]))
	}
	return pairs
}
