package collection

import (
	"bindays-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// anything below this is treated as a different bin type entirely
const typeSimilarityThreshold = 0.85

// Types returns the distinct bin types of a schedule in the order they first
// appear.
func Types(events []Collection) []string {
	seen := map[string]bool{}
	types := []string{}
	for _, e := range events {
		if seen[e.Type] {
			continue
		}
		seen[e.Type] = true
		types = append(types, e.Type)
	}
	return types
}

// ResolveType matches a bin type typed by a user (ex. "grey", "Gray") to one
// of the types in a schedule. An exact match wins, then one that only differs
// by case or whitespace, then the closest by Jaro-Winkler similarity.
func ResolveType(events []Collection, query string) (string, bool) {
	types := Types(events)
	for _, t := range types {
		if t == query {
			return t, true
		}
	}

	normalized := textutil.NormalizeName(query)
	if normalized == "" {
		return "", false
	}

	best := ""
	bestSimilarity := 0.0
	for _, t := range types {
		candidate := textutil.NormalizeName(t)
		if candidate == normalized {
			return t, true
		}
		// ties keep the type that appears first
		similarity := matchr.JaroWinkler(normalized, candidate, false)
		if similarity > bestSimilarity {
			best = t
			bestSimilarity = similarity
		}
	}

	if bestSimilarity < typeSimilarityThreshold {
		return "", false
	}
	return best, true
}

// OfType returns the collections of a single bin type, keeping their order.
func OfType(events []Collection, typ string) []Collection {
	result := []Collection{}
	for _, e := range events {
		if e.Type == typ {
			result = append(result, e)
		}
	}
	return result
}
