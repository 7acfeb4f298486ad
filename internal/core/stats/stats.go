// Package stats computes the collection-wide statistics bundle. The whole
// bundle is derived from one snapshot of records, so every sub-result is
// consistent with the same read.
package stats

import (
	"math"
	"sort"

	"userapp/internal/core/domain"
)

type AgeStats struct {
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

type ScoreStats struct {
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

type HobbyCount struct {
	Hobby string `json:"hobby"`
	Count int    `json:"count"`
}

type BucketMember struct {
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

type Bundle struct {
	TotalUsers     int                       `json:"total_users"`
	ActiveUsers    int                       `json:"active_users"`
	InactiveUsers  int                       `json:"inactive_users"`
	AgeStats       AgeStats                  `json:"age_stats"`
	PopularHobbies []HobbyCount              `json:"popular_hobbies"`
	AgeGroups      map[string][]BucketMember `json:"age_groups"`
	ScoreStats     ScoreStats                `json:"score_stats"`
}

const topHobbies = 10

// ageGroup buckets an age into the fixed boundaries [0,18), [18,30), [30,50),
// [50,100); everything else lands in the overflow group.
func ageGroup(age int) string {
	switch a := age; {
	case a < 0:
		return "100+"
	case a < 18:
		return "0-17"
	case a < 30:
		return "18-29"
	case a < 50:
		return "30-49"
	case a < 100:
		return "50-99"
	default:
		return "100+"
	}
}

// Compute derives the full bundle in one pass. Missing sub-results degrade to
// zero values, never errors.
func Compute(users []domain.User) Bundle {
	bundle := Bundle{
		TotalUsers:     len(users),
		PopularHobbies: []HobbyCount{},
		AgeGroups:      map[string][]BucketMember{},
	}

	hobbyCounts := map[string]int{}

	var ageSum, ageCount int
	var scoreSum int

	for i := range users {
		u := &users[i]

		if u.IsActive {
			bundle.ActiveUsers++
		}

		if u.Age != nil {
			ageCount++
			ageSum += *u.Age

			if ageCount == 1 || *u.Age < bundle.AgeStats.Min {
				bundle.AgeStats.Min = *u.Age
			}
			if *u.Age > bundle.AgeStats.Max {
				bundle.AgeStats.Max = *u.Age
			}

			group := ageGroup(*u.Age)
			bundle.AgeGroups[group] = append(bundle.AgeGroups[group], BucketMember{Name: u.Name, Age: u.Age})
		}

		for _, h := range u.Hobbies {
			hobbyCounts[h]++
		}

		scoreSum += u.ProfileScore

		if i == 0 || u.ProfileScore < bundle.ScoreStats.Min {
			bundle.ScoreStats.Min = u.ProfileScore
		}
		if u.ProfileScore > bundle.ScoreStats.Max {
			bundle.ScoreStats.Max = u.ProfileScore
		}
	}

	bundle.InactiveUsers = bundle.TotalUsers - bundle.ActiveUsers

	if ageCount > 0 {
		bundle.AgeStats.Average = round2(float64(ageSum) / float64(ageCount))
	}

	if len(users) > 0 {
		bundle.ScoreStats.Average = round2(float64(scoreSum) / float64(len(users)))
	}

	bundle.PopularHobbies = topHobbyCounts(hobbyCounts)

	return bundle
}

// topHobbyCounts orders hobbies by count descending with a lexicographic
// tie-break, keeping the result deterministic across runs.
func topHobbyCounts(counts map[string]int) []HobbyCount {
	ranked := make([]HobbyCount, 0, len(counts))

	for hobby, count := range counts {
		ranked = append(ranked, HobbyCount{Hobby: hobby, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Hobby < ranked[j].Hobby
	})

	if len(ranked) > topHobbies {
		ranked = ranked[:topHobbies]
	}

	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
