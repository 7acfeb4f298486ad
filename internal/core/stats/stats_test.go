package stats_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapp/internal/core/domain"
	"userapp/internal/core/stats"
)

func intPtr(v int) *int {
	return &v
}

func user(name string, age *int, active bool, hobbies ...string) domain.User {
	u := domain.User{
		Name:     name,
		Email:    name + "@example.com",
		Age:      age,
		Hobbies:  hobbies,
		IsActive: active,
	}
	u.ProfileScore = domain.ComputeScore(u)

	return u
}

func TestCompute_EmptyCollection(t *testing.T) {
	bundle := stats.Compute(nil)

	assert.Equal(t, 0, bundle.TotalUsers)
	assert.Equal(t, 0, bundle.ActiveUsers)
	assert.Equal(t, 0, bundle.InactiveUsers)
	assert.Equal(t, stats.AgeStats{}, bundle.AgeStats)
	assert.Equal(t, stats.ScoreStats{}, bundle.ScoreStats)
	assert.Empty(t, bundle.PopularHobbies)
	assert.Empty(t, bundle.AgeGroups)
	assert.NotNil(t, bundle.PopularHobbies)
	assert.NotNil(t, bundle.AgeGroups)
}

func TestCompute_Totals(t *testing.T) {
	bundle := stats.Compute([]domain.User{
		user("ann", intPtr(25), true),
		user("bea", intPtr(40), true),
		user("cy", nil, false),
	})

	assert.Equal(t, 3, bundle.TotalUsers)
	assert.Equal(t, 2, bundle.ActiveUsers)
	assert.Equal(t, 1, bundle.InactiveUsers)
}

func TestCompute_AgeStatsSkipMissingAges(t *testing.T) {
	bundle := stats.Compute([]domain.User{
		user("ann", intPtr(20), true),
		user("bea", intPtr(31), true),
		user("cy", nil, true),
	})

	assert.Equal(t, 25.5, bundle.AgeStats.Average)
	assert.Equal(t, 20, bundle.AgeStats.Min)
	assert.Equal(t, 31, bundle.AgeStats.Max)
}

func TestCompute_AgeStatsAllMissing(t *testing.T) {
	bundle := stats.Compute([]domain.User{
		user("ann", nil, true),
		user("bea", nil, true),
	})

	assert.Equal(t, stats.AgeStats{}, bundle.AgeStats)
}

func TestCompute_PopularHobbiesRankedWithTieBreak(t *testing.T) {
	bundle := stats.Compute([]domain.User{
		user("ann", nil, true, "reading", "chess"),
		user("bea", nil, true, "reading", "baking"),
		user("cy", nil, true, "reading", "chess"),
	})

	assert.Equal(t, []stats.HobbyCount{
		{Hobby: "reading", Count: 3},
		{Hobby: "chess", Count: 2},
		{Hobby: "baking", Count: 1},
	}, bundle.PopularHobbies)
}

func TestCompute_PopularHobbiesCappedAtTen(t *testing.T) {
	var users []domain.User

	for i := 0; i < 12; i++ {
		users = append(users, user(fmt.Sprintf("u%d", i), nil, true, fmt.Sprintf("hobby-%02d", i)))
	}

	bundle := stats.Compute(users)

	require.Len(t, bundle.PopularHobbies, 10)
	// all counts tie, so the lexicographically smallest ten survive
	assert.Equal(t, "hobby-00", bundle.PopularHobbies[0].Hobby)
	assert.Equal(t, "hobby-09", bundle.PopularHobbies[9].Hobby)
}

func TestCompute_AgeGroupBoundaries(t *testing.T) {
	bundle := stats.Compute([]domain.User{
		user("kid", intPtr(17), true),
		user("young", intPtr(18), true),
		user("adult", intPtr(29), true),
		user("mid", intPtr(30), true),
		user("senior", intPtr(50), true),
		user("elder", intPtr(100), true),
		user("ghost", nil, true),
	})

	groups := bundle.AgeGroups

	require.Len(t, groups["0-17"], 1)
	assert.Equal(t, "kid", groups["0-17"][0].Name)

	require.Len(t, groups["18-29"], 2)
	assert.Equal(t, "young", groups["18-29"][0].Name)
	assert.Equal(t, "adult", groups["18-29"][1].Name)

	require.Len(t, groups["30-49"], 1)
	assert.Equal(t, "mid", groups["30-49"][0].Name)

	require.Len(t, groups["50-99"], 1)
	assert.Equal(t, "senior", groups["50-99"][0].Name)

	require.Len(t, groups["100+"], 1)
	assert.Equal(t, "elder", groups["100+"][0].Name)

	total := 0
	for _, members := range groups {
		total += len(members)
	}
	assert.Equal(t, 6, total, "users without an age stay out of the buckets")
}

func TestCompute_ScoreStats(t *testing.T) {
	users := []domain.User{
		user("ann", intPtr(25), true, "chess", "reading"), // 76
		user("bea", nil, true),                            // 50
	}

	bundle := stats.Compute(users)

	assert.Equal(t, 63.0, bundle.ScoreStats.Average)
	assert.Equal(t, 50, bundle.ScoreStats.Min)
	assert.Equal(t, 76, bundle.ScoreStats.Max)
}

func TestCompute_AverageRounding(t *testing.T) {
	bundle := stats.Compute([]domain.User{
		user("ann", intPtr(20), true),
		user("bea", intPtr(21), true),
		user("cy", intPtr(21), true),
	})

	assert.Equal(t, 20.67, bundle.AgeStats.Average)
}
