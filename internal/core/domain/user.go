package domain

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"time"
)

const MaxHobbies = 10

// User is the sole persisted entity. ProfileScore is derived and recomputed
// on every write; it is never accepted from callers.
type User struct {
	ID           string
	Name         string   `validate:"required,min=2,max=100,person_name"`
	Email        string   `validate:"required,email,max=255,allowed_domain"`
	Age          *int     `validate:"omitempty,gte=13,lte=120"`
	Hobbies      []string `validate:"max=10,dive,min=2,max=50"`
	IsActive     bool
	ProfileScore int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch carries the fields supplied on a partial update. A nil field was
// not present in the request and must be left untouched.
type UserPatch struct {
	Name     *string   `validate:"omitempty,min=2,max=100,person_name"`
	Email    *string   `validate:"omitempty,email,max=255,allowed_domain"`
	Age      *int      `validate:"omitempty,gte=13,lte=120"`
	Hobbies  *[]string `validate:"omitempty,max=10,dive,min=2,max=50"`
	IsActive *bool
}

// Apply merges the patch into a copy of the user. Hobbies are replaced
// wholesale on update, without de-duplication.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Age != nil {
		u.Age = p.Age
	}
	if p.Hobbies != nil {
		u.Hobbies = *p.Hobbies
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	return u
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil && p.Hobbies == nil && p.IsActive == nil
}

func (u *User) HasHobby(hobby string) bool {
	for _, h := range u.Hobbies {
		if h == hobby {
			return true
		}
	}
	return false
}

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID returns an opaque 24-character hex identifier.
func NewID() string {
	buf := make([]byte, 12)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// IsValidID reports whether s has the 24-hex-character shape. Anything else
// is rejected before it reaches storage.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}
