// Package validate holds the stateless field checks applied before any store
// mutation. Every check reports all violations of a request at once.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobboard-backend/internal/shared/apperr"
)

const (
	NameMessage        = "Name must contain only alphabets"
	PasswordMessage    = "Password must be at least 8 characters, include one uppercase, one lowercase, one number, and one special character."
	TitleMessage       = "Title must be 1-100 characters."
	DescriptionMessage = "Description must be 20-2000 characters."
	LocationMessage    = "Location must be at most 255 characters."
	ResumeMessage      = "Resume must be a PDF file."
	CoverLetterMessage = "Cover letter must be under 200 characters."
	StatusMessage      = "Invalid status"
	EmailMessage       = "Enter a valid email address."
	RoleMessage        = "Role must be one of: applicant, company."
	RequiredMessage    = "This field is required."
)

// passwordSymbols is the fixed symbol set a password must draw from.
const passwordSymbols = "@$!%*?&"

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

var namePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// SignupInput is the user-supplied part of a new account.
type SignupInput struct {
	Name     string `json:"name" validate:"required,alphaspace"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role" validate:"required,oneof=applicant company"`
}

// JobInput is the editable part of a job posting.
type JobInput struct {
	Title       string `json:"title" validate:"min=1,max=100"`
	Description string `json:"description" validate:"min=20,max=2000"`
	Location    string `json:"location" validate:"max=255"`
}

// ApplicationInput is the user-supplied part of an application.
type ApplicationInput struct {
	Job         string `json:"job" validate:"required"`
	Resume      string `json:"resume" validate:"required,pdfname"`
	CoverLetter string `json:"cover_letter" validate:"max=200"`
}

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "alphaspace", func(fl validator.FieldLevel) bool {
		return IsAlphaSpace(fl.Field().String())
	})
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	mustRegister(v, "pdfname", func(fl validator.FieldLevel) bool {
		return IsPDFName(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Signup checks a signup request.
func Signup(in SignupInput) []apperr.FieldError {
	return collect(engine.Struct(in), nil)
}

// Job checks a job posting. When only is non-empty, violations are reported
// for those json fields alone (partial update).
func Job(in JobInput, only ...string) []apperr.FieldError {
	return collect(engine.Struct(in), only)
}

// Application checks an application submission.
func Application(in ApplicationInput) []apperr.FieldError {
	return collect(engine.Struct(in), nil)
}

// Status checks that raw is one of allowed.
func Status(raw string, allowed []string) []apperr.FieldError {
	if err := engine.Var(raw, "required,oneof="+strings.Join(allowed, " ")); err != nil {
		return []apperr.FieldError{{Message: StatusMessage}}
	}
	return nil
}

// IsAlphaSpace reports whether s is non-empty and made of ASCII letters and whitespace.
func IsAlphaSpace(s string) bool {
	return namePattern.MatchString(s)
}

// IsStrongPassword reports whether s has 8 to MaxPasswordBytes characters
// drawn from letters, digits and the fixed symbol set, with at least one of
// each class.
func IsStrongPassword(s string) bool {
	if len(s) < 8 || len(s) > MaxPasswordBytes {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}

// IsPDFName reports whether a file name carries the .pdf extension.
func IsPDFName(name string) bool {
	return strings.HasSuffix(name, ".pdf")
}

func collect(err error, only []string) []apperr.FieldError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperr.FieldError{{Message: err.Error()}}
	}
	var out []apperr.FieldError
	for _, fe := range verrs {
		if len(only) > 0 && !contains(only, fe.Field()) {
			continue
		}
		out = append(out, apperr.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return RequiredMessage
	}
	switch fe.Field() {
	case "name":
		return NameMessage
	case "email":
		return EmailMessage
	case "password":
		return PasswordMessage
	case "role":
		return RoleMessage
	case "title":
		return TitleMessage
	case "description":
		return DescriptionMessage
	case "location":
		return LocationMessage
	case "resume":
		return ResumeMessage
	case "cover_letter":
		return CoverLetterMessage
	}
	return fe.Error()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
