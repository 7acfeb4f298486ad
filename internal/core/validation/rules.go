package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"userapp/internal/core/domain"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

// disposableDomains is the configured set of provider domains excluded from
// registration.
var disposableDomains = map[string]struct{}{
	"tempmail.com":      {},
	"throwaway.email":   {},
	"guerrillamail.com": {},
	"mailinator.com":    {},
	"10minutemail.com":  {},
	"yopmail.com":       {},
}

func validatePersonName(fl validator.FieldLevel) bool {
	return namePattern.MatchString(fl.Field().String())
}

func validateAllowedDomain(fl validator.FieldLevel) bool {
	email := fl.Field().String()

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return true // leave syntax errors to the email rule
	}

	_, disposable := disposableDomains[strings.ToLower(email[at+1:])]
	return !disposable
}

// NormalizeUser applies the normalization step of the pipeline: surrounding
// whitespace is trimmed and the email is lowercased before any check runs.
func NormalizeUser(u *domain.User) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	for i, h := range u.Hobbies {
		u.Hobbies[i] = strings.TrimSpace(h)
	}
}

// NormalizePatch trims and lowercases only the fields the patch supplies.
func NormalizePatch(p *domain.UserPatch) {
	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		p.Name = &trimmed
	}

	if p.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*p.Email))
		p.Email = &lowered
	}

	if p.Hobbies != nil {
		hobbies := *p.Hobbies
		for i, h := range hobbies {
			hobbies[i] = strings.TrimSpace(h)
		}
	}
}

// ValidateCreate runs the full pipeline over a candidate user: normalization,
// presence checks, structural checks, then the semantic domain checks, all
// declared on the struct tags. Errors accumulate across fields.
func ValidateCreate(u *domain.User) domain.ValidationErrors {
	NormalizeUser(u)

	if err := Validator.Struct(u); err != nil {
		return FormatErrors(err)
	}

	return nil
}

// ValidateUpdate runs the same pipeline restricted to the supplied fields.
func ValidateUpdate(p *domain.UserPatch) domain.ValidationErrors {
	NormalizePatch(p)

	if err := Validator.Struct(p); err != nil {
		return FormatErrors(err)
	}

	return nil
}

type hobbyCandidate struct {
	Hobby string `validate:"required,min=2,max=50"`
}

// ValidateHobby normalizes and checks a single hobby entry for the dedicated
// add operation.
func ValidateHobby(hobby string) (string, domain.ValidationErrors) {
	candidate := hobbyCandidate{Hobby: strings.TrimSpace(hobby)}

	if err := Validator.Struct(candidate); err != nil {
		return "", FormatErrors(err)
	}

	return candidate.Hobby, nil
}
