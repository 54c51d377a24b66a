package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigramSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, trigramSimilarity("kettle", "kettle"), 1e-9)
	assert.Zero(t, trigramSimilarity("kettle", "xyzq"))
	assert.Zero(t, trigramSimilarity("", "kettle"))
	assert.Zero(t, trigramSimilarity("kettle", ""))

	// Symmetric.
	assert.InDelta(t,
		trigramSimilarity("solar kettle", "kettle"),
		trigramSimilarity("kettle", "solar kettle"), 1e-9)

	// Close variants score above unrelated words.
	assert.Greater(t,
		trigramSimilarity("solar kettle", "kettl"),
		trigramSimilarity("solar kettle", "garden"))
}

func TestTrigramSimilarityCaseInsensitive(t *testing.T) {
	assert.InDelta(t, 1.0, trigramSimilarity("Kettle", "kettle"), 1e-9)
}

func TestTrigrams(t *testing.T) {
	set := trigrams("cat")
	// Padded as "  cat " per pg_trgm.
	for _, want := range []string{"  c", " ca", "cat", "at "} {
		assert.Contains(t, set, want)
	}
	assert.Len(t, set, 4)
}

func TestSplitAlphanumeric(t *testing.T) {
	assert.Equal(t, []string{"solar", "kettle", "2"}, splitAlphanumeric("solar-kettle (2)"))
	assert.Empty(t, splitAlphanumeric("!!! ..."))
}

func TestBuildSearchQuery(t *testing.T) {
	sql, args := buildSearchQuery([]string{"solar", "kettle"}, 0.1, 10)

	// Two words: 4 placeholders each for conditions, 2 each for ranking,
	// plus the limit.
	assert.Equal(t, 13, strings.Count(sql, "?"))
	require.Len(t, args, 13)
	assert.Equal(t, 10, args[len(args)-1])

	// User input stays out of the SQL text.
	assert.NotContains(t, sql, "solar")
	assert.NotContains(t, sql, "kettle")
	assert.Contains(t, sql, "ORDER BY")
	assert.Contains(t, sql, "LIMIT ?")
}

func TestBuildSearchQueryNeverInterpolates(t *testing.T) {
	hostile := "'; DROP TABLE projects; --"
	sql, args := buildSearchQuery([]string{hostile}, 0.1, 10)

	assert.NotContains(t, sql, "DROP TABLE")
	assert.Contains(t, args, hostile)
}

func TestScoreProject(t *testing.T) {
	words := []string{"kettle"}

	exact := scoreProject("Solar kettle", "Boils water with sunlight", words)
	near := scoreProject("Solar kettles", "Boils water with sunlight", words)
	unrelated := scoreProject("Garden drone", "Waters plants automatically", words)

	assert.Greater(t, exact, near)
	assert.Greater(t, near, unrelated)
}

func TestMatchesAnyWord(t *testing.T) {
	assert.True(t, matchesAnyWord("Solar kettle", "Boils water", []string{"kettle"}))
	assert.True(t, matchesAnyWord("Solar kettle", "Boils water", []string{"zzz", "water"}))
	assert.False(t, matchesAnyWord("Solar kettle", "Boils water", []string{"qqqq"}))
}
