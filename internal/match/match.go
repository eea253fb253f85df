// Package match decides whether a job title is relevant to a requested
// role. Two modes: exact requires the role (or its acronym) to appear in
// the title; similar also accepts related titles and word-level matches.
// Pure functions over static data — safe for concurrent use.
package match

import (
	"strings"

	"github.com/roleradar/roleradar/internal/model"
)

// Mode selects the matching strictness.
type Mode string

const (
	ModeExact   Mode = "exact"
	ModeSimilar Mode = "similar"
)

// Valid reports whether m is a recognized mode.
func (m Mode) Valid() bool {
	return m == ModeExact || m == ModeSimilar
}

// levelWords are seniority prefixes stripped when deriving related-title
// variations for roles absent from the relatedRoles table.
var levelWords = map[string]bool{
	"senior":    true,
	"junior":    true,
	"lead":      true,
	"principal": true,
	"staff":     true,
	"associate": true,
	"head":      true,
	"chief":     true,
}

// functionKeywords is the closed set of seniority/function terms used by
// the partial-word rule to accept adjacent titles like "Project
// Coordinator" for the role "Project Manager".
var functionKeywords = map[string]bool{
	"manager":       true,
	"lead":          true,
	"director":      true,
	"coordinator":   true,
	"officer":       true,
	"head":          true,
	"chief":         true,
	"specialist":    true,
	"consultant":    true,
	"analyst":       true,
	"administrator": true,
	"supervisor":    true,
	"executive":     true,
	"partner":       true,
	"architect":     true,
	"advisor":       true,
	"engineer":      true,
	"associate":     true,
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RelatedTitles returns alternative titles for the given role: a direct
// table lookup first, then a substring-overlap lookup against the table
// keys (so "Senior Project Manager" resolves to "project manager"), and
// finally generic level-word variations for roles the table doesn't know.
func RelatedTitles(role string) []string {
	key := normalize(role)

	if alts, ok := relatedRoles[key]; ok {
		return alts
	}

	for k, alts := range relatedRoles {
		if strings.Contains(key, k) || strings.Contains(k, key) {
			return alts
		}
	}

	words := strings.Fields(key)
	base := make([]string, 0, len(words))
	for _, w := range words {
		if !levelWords[w] {
			base = append(base, w)
		}
	}

	var variations []string
	if len(base) < len(words) {
		variations = append(variations, strings.Join(base, " "))
	}

	stem := key
	if len(base) > 0 {
		stem = strings.Join(base, " ")
	}
	for _, prefix := range []string{"senior", "lead", "principal"} {
		variations = append(variations, prefix+" "+stem)
	}

	return variations
}

// Matches reports whether title is considered a match for role under the
// given mode. Rules are evaluated in order and short-circuit:
//
//  1. role appears as a substring of title (both modes)
//  2. title equals the role's acronym, acronym length >= 2 (both modes)
//  3. similar only: any related title appears as a substring of title
//  4. similar only: every significant role word (4+ chars) appears in title
//  5. similar only: any significant role word appears in title AND the
//     title contains a function keyword
//
// The acronym rule is role-name-blind: "PM" matches both "Project Manager"
// and "Product Manager". Accepted heuristic, not a defect.
func Matches(title, role string, mode Mode) bool {
	titleNorm := normalize(title)
	roleNorm := normalize(role)

	if strings.Contains(titleNorm, roleNorm) {
		return true
	}

	var acronym strings.Builder
	for _, w := range strings.Fields(roleNorm) {
		acronym.WriteByte(w[0])
	}
	if acronym.Len() >= 2 && titleNorm == acronym.String() {
		return true
	}

	if mode != ModeSimilar {
		return false
	}

	for _, alt := range RelatedTitles(role) {
		if strings.Contains(titleNorm, normalize(alt)) {
			return true
		}
	}

	var significant []string
	for _, w := range strings.Fields(roleNorm) {
		if len(w) >= 4 {
			significant = append(significant, w)
		}
	}

	if len(significant) > 0 {
		all := true
		for _, w := range significant {
			if !strings.Contains(titleNorm, w) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}

	titleWords := strings.Fields(titleNorm)
	hasKeyword := false
	for _, w := range titleWords {
		if functionKeywords[w] {
			hasKeyword = true
			break
		}
	}
	if hasKeyword {
		for _, w := range significant {
			if strings.Contains(titleNorm, w) {
				return true
			}
		}
	}

	return false
}

// DedupKey returns the identity used to decide whether two sightings are
// the same posting within one filtering pass: the URL when non-empty,
// otherwise lowercase(title)|lowercase(company). An empty string must
// never be used as a key — it would silently collapse every URL-less job
// into one.
func DedupKey(j model.Job) string {
	if j.URL != "" {
		return j.URL
	}
	return normalize(j.Title) + "|" + normalize(j.Company)
}

// Filter returns the jobs whose title matches at least one of the roles,
// in input order, deduplicated in the same pass. For each job the roles
// are tried in the supplied order and the first match wins; a job appears
// at most once even when duplicate sightings from different queries would
// match several roles.
func Filter(jobs []model.Job, roles []string, mode Mode) []model.Job {
	seen := make(map[string]bool, len(jobs))
	var filtered []model.Job

	for _, job := range jobs {
		key := DedupKey(job)
		if seen[key] {
			continue
		}
		for _, role := range roles {
			if Matches(job.Title, role, mode) {
				filtered = append(filtered, job)
				seen[key] = true
				break
			}
		}
	}

	return filtered
}
