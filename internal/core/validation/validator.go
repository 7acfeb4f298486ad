package validation

import (
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"userapp/internal/core/domain"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	if err := Validator.RegisterValidation("person_name", validatePersonName); err != nil {
		panic(err)
	}

	if err := Validator.RegisterValidation("allowed_domain", validateAllowedDomain); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func addCustomTranslations() {
	Validator.RegisterTranslation("required", Translator, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is required", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fieldName(fe))
		return t
	})

	Validator.RegisterTranslation("min", Translator, func(ut ut.Translator) error {
		return ut.Add("min", "{0} must be at least {1} characters", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("min", fieldName(fe), fe.Param())
		return t
	})

	Validator.RegisterTranslation("max", Translator, func(ut ut.Translator) error {
		return ut.Add("max", "{0} cannot exceed {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("max", fieldName(fe), fe.Param())
		return t
	})

	Validator.RegisterTranslation("email", Translator, func(ut ut.Translator) error {
		return ut.Add("email", "{0} must be a valid email address", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("email", fieldName(fe))
		return t
	})

	Validator.RegisterTranslation("gte", Translator, func(ut ut.Translator) error {
		return ut.Add("gte", "{0} must be at least {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("gte", fieldName(fe), fe.Param())
		return t
	})

	Validator.RegisterTranslation("lte", Translator, func(ut ut.Translator) error {
		return ut.Add("lte", "{0} cannot exceed {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("lte", fieldName(fe), fe.Param())
		return t
	})

	Validator.RegisterTranslation("person_name", Translator, func(ut ut.Translator) error {
		return ut.Add("person_name", "{0} can only contain letters, spaces, hyphens and apostrophes", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("person_name", fieldName(fe))
		return t
	})

	Validator.RegisterTranslation("allowed_domain", Translator, func(ut ut.Translator) error {
		return ut.Add("allowed_domain", "{0} belongs to a disallowed provider domain", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("allowed_domain", fieldName(fe))
		return t
	})
}

// fieldName flattens indexed slice entries ("Hobbies[2]") onto the parent
// field so each field carries at most one message.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()

	if i := strings.Index(name, "["); i > 0 {
		name = name[:i]
	}

	return strings.ToLower(name)
}

// FormatErrors converts validator output to the field -> message map the
// handlers return, keeping the first violation per field.
func FormatErrors(err error) domain.ValidationErrors {
	ve := domain.ValidationErrors{}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			ve.Add(fieldName(fe), fe.Translate(Translator))
		}
	}

	if len(ve) == 0 {
		return nil
	}

	return ve
}
