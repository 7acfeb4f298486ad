package request

import "userapp/internal/core/domain"

type CreateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Age      *int     `json:"age,omitempty"`
	Hobbies  []string `json:"hobbies,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
}

func (r CreateUserRequest) ToDomain() domain.User {
	user := domain.User{
		Name:     r.Name,
		Email:    r.Email,
		Age:      r.Age,
		Hobbies:  r.Hobbies,
		IsActive: true,
	}

	if r.IsActive != nil {
		user.IsActive = *r.IsActive
	}

	return user
}

type UpdateUserRequest struct {
	Name     *string   `json:"name,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Age      *int      `json:"age,omitempty"`
	Hobbies  *[]string `json:"hobbies,omitempty"`
	IsActive *bool     `json:"isActive,omitempty"`
}

func (r UpdateUserRequest) ToPatch() domain.UserPatch {
	return domain.UserPatch{
		Name:     r.Name,
		Email:    r.Email,
		Age:      r.Age,
		Hobbies:  r.Hobbies,
		IsActive: r.IsActive,
	}
}

type AddHobbyRequest struct {
	Hobby string `json:"hobby"`
}
