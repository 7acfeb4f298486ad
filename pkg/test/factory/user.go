package factory

import (
	fab "github.com/Goldziher/fabricator"

	"userapp/internal/core/domain"
)

// NewUser builds a user with sane defaults; pass a map to override fields.
func NewUser(customData ...map[string]any) domain.User {
	instance := fab.New(domain.User{})

	age := 30

	defaults := map[string]any{
		"ID":       domain.NewID(),
		"Name":     "Test User",
		"Email":    "test@example.com",
		"Age":      &age,
		"Hobbies":  []string{"reading"},
		"IsActive": true,
	}

	// fabricator's Build only reads the first overrides map, so merge
	// defaults and custom data into one map before calling it
	merged := make(map[string]any, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for _, custom := range customData {
		for k, v := range custom {
			merged[k] = v
		}
	}

	user := instance.Build(merged)
	user.ProfileScore = domain.ComputeScore(user)

	return user
}
