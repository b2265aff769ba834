package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name                                  string
		email, password, username, phone      string
		wantFields                            []string
	}{
		{"valid", "a@x.com", "pw", "alice", "555", nil},
		{"missing everything", "", "", "", "", []string{"email", "password", "username", "phonenumber"}},
		{"bad email", "not-an-email", "pw", "alice", "555", []string{"email"}},
		{"missing phone", "a@x.com", "pw", "alice", "", []string{"phonenumber"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSignup(tt.email, tt.password, tt.username, tt.phone)
			assert.Equal(t, len(tt.wantFields) > 0, errs.HasErrors())
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
			assert.Len(t, errs, len(tt.wantFields))
		})
	}
}

func TestValidateBio(t *testing.T) {
	tests := []struct {
		name                      string
		bioName, age, spec        string
		wantMessage               string
	}{
		{"valid", "Alice", "18", "Biology", ""},
		{"missing name", "", "18", "Biology", "Missing required fields"},
		{"missing age", "Alice", "", "Biology", "Missing required fields"},
		{"missing specialization", "Alice", "18", "", "Missing required fields"},
		{"unknown specialization", "Alice", "18", "Astrology", "Invalid specialization"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateBio(tt.bioName, tt.age, tt.spec)
			if tt.wantMessage == "" {
				assert.False(t, errs.HasErrors())
				return
			}
			assert.True(t, errs.HasErrors())
			assert.Equal(t, tt.wantMessage, errs.Message())
		})
	}
}

func TestValidationErrors_MessageIsStable(t *testing.T) {
	errs := make(ValidationErrors)
	errs.Add("b", "second")
	errs.Add("a", "first")
	assert.Equal(t, "first", errs.Message())
	assert.Empty(t, ValidationErrors{}.Message())
}
