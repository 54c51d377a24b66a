package database

import (
	"sort"
	"strings"

	"github.com/fundspark/fundspark-backend/models"
)

const (
	searchThreshold = 0.1
	searchLimit     = 10
)

// Search runs a similarity-ranked multi-word query over project titles and
// subtitles. With pg_trgm available the ranking happens in the database;
// otherwise an equivalent in-process trigram scorer is used. An empty result
// set is not an error.
func (r *ProjectRepo) Search(query string) ([]*models.Project, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil, nil
	}

	if r.trigramSearch {
		return r.searchTrigram(words)
	}
	return r.searchFallback(words)
}

// searchTrigram builds the pg_trgm query with bound parameters only; user
// words never reach the SQL text itself.
func (r *ProjectRepo) searchTrigram(words []string) ([]*models.Project, error) {
	sql, args := buildSearchQuery(words, searchThreshold, searchLimit)

	var projects []*models.Project
	err := r.db.Raw(sql, args...).Scan(&projects).Error
	return projects, err
}

func buildSearchQuery(words []string, threshold float64, limit int) (string, []any) {
	conditions := make([]string, 0, len(words))
	ranks := make([]string, 0, len(words))
	var condArgs, rankArgs []any

	for _, word := range words {
		conditions = append(conditions, "similarity(title, ?) > ? OR similarity(subtitle, ?) > ?")
		condArgs = append(condArgs, word, threshold, word, threshold)
		ranks = append(ranks, "similarity(title, ?) + similarity(subtitle, ?)")
		rankArgs = append(rankArgs, word, word)
	}

	sql := "SELECT * FROM projects WHERE (" + strings.Join(conditions, " OR ") + ")" +
		" ORDER BY " + strings.Join(ranks, " + ") + " DESC LIMIT ?"

	args := append(condArgs, rankArgs...)
	args = append(args, limit)
	return sql, args
}

// searchFallback scores candidates in process with the same threshold, rank
// and limit the trigram query would apply.
func (r *ProjectRepo) searchFallback(words []string) ([]*models.Project, error) {
	var candidates []*models.Project
	if err := r.db.Find(&candidates).Error; err != nil {
		return nil, err
	}

	type scored struct {
		project *models.Project
		score   float64
	}
	var matches []scored
	for _, p := range candidates {
		if !matchesAnyWord(p.Title, p.Subtitle, words) {
			continue
		}
		matches = append(matches, scored{p, scoreProject(p.Title, p.Subtitle, words)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	var results []*models.Project
	for i, m := range matches {
		if i == searchLimit {
			break
		}
		results = append(results, m.project)
	}
	return results, nil
}

func matchesAnyWord(title, subtitle string, words []string) bool {
	for _, w := range words {
		if trigramSimilarity(title, w) > searchThreshold || trigramSimilarity(subtitle, w) > searchThreshold {
			return true
		}
	}
	return false
}

// scoreProject sums per-word similarity across both fields, mirroring the
// ORDER BY expression of the trigram query.
func scoreProject(title, subtitle string, words []string) float64 {
	var score float64
	for _, w := range words {
		score += trigramSimilarity(title, w) + trigramSimilarity(subtitle, w)
	}
	return score
}

// trigramSimilarity reproduces pg_trgm scoring: the share of trigrams the two
// strings have in common, with each word padded by two leading and one
// trailing space before extraction.
func trigramSimilarity(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	common := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			common++
		}
	}
	union := len(ta) + len(tb) - common
	return float64(common) / float64(union)
}

func trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range splitAlphanumeric(strings.ToLower(s)) {
		padded := "  " + word + " "
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			set[string(runes[i:i+3])] = struct{}{}
		}
	}
	return set
}

// splitAlphanumeric breaks s into maximal runs of letters and digits, the way
// pg_trgm tokenizes before trigram extraction.
func splitAlphanumeric(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !isAlphanumeric(r)
	})
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r > 127
}
