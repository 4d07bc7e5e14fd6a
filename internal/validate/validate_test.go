package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/shared/apperr"
)

func validSignup() SignupInput {
	return SignupInput{Name: "Test Applicant", Email: "applicant@test.com", Password: "Test@1234", Role: "applicant"}
}

func fieldsOf(errs []apperr.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestSignupAcceptsValidInput(t *testing.T) {
	assert.Empty(t, Signup(validSignup()))
}

func TestPasswordRules(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Test@1234", true},
		{"New@1234", true},
		{"weak", false},
		{"alllower@1", false},
		{"ALLUPPER@1", false},
		{"NoDigits@@", false},
		{"NoSymbol12", false},
		{"Bad#Symbol1", false},
		{"Sh@1t", false},
		{"Aa1@" + strings.Repeat("b", 68), true},
		{"Aa1@" + strings.Repeat("b", 69), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, IsStrongPassword(tt.password), tt.password)
	}

	in := validSignup()
	in.Password = "weak"
	errs := Signup(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].Field)
	assert.Equal(t, PasswordMessage, errs[0].Message)
}

func TestNameRules(t *testing.T) {
	assert.True(t, IsAlphaSpace("Test Applicant"))
	assert.False(t, IsAlphaSpace("User123"))
	assert.False(t, IsAlphaSpace(""))

	in := validSignup()
	in.Name = "User123"
	errs := Signup(in)
	require.Len(t, errs, 1)
	assert.Equal(t, NameMessage, errs[0].Message)
}

func TestSignupCollectsAllViolations(t *testing.T) {
	errs := Signup(SignupInput{Name: "User123", Email: "not-an-email", Password: "weak", Role: "admin"})
	assert.ElementsMatch(t, []string{"name", "email", "password", "role"}, fieldsOf(errs))
}

func TestJobBounds(t *testing.T) {
	okDesc := strings.Repeat("d", 20)
	assert.Empty(t, Job(JobInput{Title: strings.Repeat("t", 100), Description: okDesc}))

	errs := Job(JobInput{Title: strings.Repeat("t", 101), Description: "too short"})
	assert.ElementsMatch(t, []string{"title", "description"}, fieldsOf(errs))

	errs = Job(JobInput{Title: "", Description: strings.Repeat("d", 2001)})
	assert.ElementsMatch(t, []string{"title", "description"}, fieldsOf(errs))
}

func TestJobPartialReportsOnlySuppliedFields(t *testing.T) {
	errs := Job(JobInput{Title: "Fine", Description: "short"}, "title")
	assert.Empty(t, errs)

	errs = Job(JobInput{Title: "", Description: "short"}, "title")
	require.Len(t, errs, 1)
	assert.Equal(t, TitleMessage, errs[0].Message)
}

func TestApplicationRules(t *testing.T) {
	assert.Empty(t, Application(ApplicationInput{Job: "id", Resume: "cv.pdf", CoverLetter: "Interested."}))

	errs := Application(ApplicationInput{Job: "id", Resume: "cv.docx", CoverLetter: strings.Repeat("c", 201)})
	assert.ElementsMatch(t, []string{"resume", "cover_letter"}, fieldsOf(errs))
	for _, e := range errs {
		if e.Field == "resume" {
			assert.Equal(t, ResumeMessage, e.Message)
		}
	}
}

func TestStatus(t *testing.T) {
	allowed := []string{"Applied", "Reviewed", "Interview", "Rejected", "Hired"}
	assert.Empty(t, Status("Interview", allowed))
	errs := Status("Promoted", allowed)
	require.Len(t, errs, 1)
	assert.Equal(t, StatusMessage, errs[0].Message)
	assert.NotEmpty(t, Status("", allowed))
}
