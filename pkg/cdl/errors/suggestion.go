package errors

import (
	"fmt"
	"strings"
)

// SuggestSectionType suggests valid section types when an unknown type is used.
// It uses Levenshtein distance to find the closest match.
func SuggestSectionType(unknown string, validTypes []string) string {
	if s := SuggestClosest(unknown, validTypes); s != "" {
		return s
	}
	if len(validTypes) == 0 {
		return ""
	}
	return fmt.Sprintf("Valid section types: %s", strings.Join(validTypes, ", "))
}

// SuggestClosest returns a "Did you mean" hint for the candidate nearest to
// the unknown value, or "" when nothing is within a reasonable edit distance.
func SuggestClosest(unknown string, candidates []string) string {
	minDistance := 1000
	var bestMatch string

	for _, c := range candidates {
		dist := levenshteinDistance(unknown, c)
		if dist < minDistance {
			minDistance = dist
			bestMatch = c
		}
	}

	// Only suggest if the distance is reasonable (< 5 edits)
	if minDistance < 5 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// SuggestMissingElement suggests adding a required document element.
func SuggestMissingElement(name string, example string) string {
	if example != "" {
		return fmt.Sprintf("Add %s to the document", example)
	}
	return fmt.Sprintf("Add a <%s> element to the document", name)
}

// SuggestMissingAttribute suggests adding a required attribute.
func SuggestMissingAttribute(element, attribute, exampleValue string) string {
	return fmt.Sprintf("Add %s=%q to the <%s> element", attribute, exampleValue, element)
}

// levenshteinDistance computes the Levenshtein distance between two strings.
// Used for finding similar section type names for suggestions.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}

// min3 returns the minimum of three integers.
func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
