package response

import (
	"time"

	"userapp/internal/core/domain"
)

type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Age          *int      `json:"age"`
	Hobbies      []string  `json:"hobbies"`
	IsActive     bool      `json:"isActive"`
	ProfileScore int       `json:"profileScore"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewUserResponse(u domain.User) UserResponse {
	hobbies := u.Hobbies

	if hobbies == nil {
		hobbies = []string{}
	}

	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Age:          u.Age,
		Hobbies:      hobbies,
		IsActive:     u.IsActive,
		ProfileScore: u.ProfileScore,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))

	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}

	return out
}

type Pagination struct {
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	Total           int64 `json:"total"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

type PagedUsersResponse struct {
	Data       []UserResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type SearchUsersResponse struct {
	Data  []UserResponse `json:"data"`
	Count int            `json:"count"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
