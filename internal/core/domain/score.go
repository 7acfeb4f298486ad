package domain

const (
	scoreName       = 20
	scoreEmail      = 30
	scoreAge        = 20
	scorePerHobby   = 3
	scoreHobbiesCap = 30
	MaxProfileScore = scoreName + scoreEmail + scoreAge + scoreHobbiesCap
)

// ComputeScore derives the profile completeness score from a validated user.
// It runs on every persisted write; the maximum attainable value is 100.
func ComputeScore(u User) int {
	score := 0

	if len(u.Name) >= 2 {
		score += scoreName
	}
	if u.Email != "" {
		score += scoreEmail
	}
	if u.Age != nil {
		score += scoreAge
	}

	hobbies := len(u.Hobbies) * scorePerHobby
	if hobbies > scoreHobbiesCap {
		hobbies = scoreHobbiesCap
	}
	score += hobbies

	return score
}
