package validator

import (
	"net/mail"
	"sort"
	"strings"

	"github.com/lukam/admitly/internal/domain"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// Message returns a single stable message for endpoints whose wire contract
// is a flat {"error": "..."} body.
func (v ValidationErrors) Message() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	if len(fields) == 0 {
		return ""
	}
	return v[fields[0]]
}

func ValidateSignup(email, password, username, phonenumber string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}

	if strings.TrimSpace(phonenumber) == "" {
		errs.Add("phonenumber", "Phone number is required")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(email) == "" {
		errs.Add("email", "Email is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

// ValidateBio checks the three required multipart fields. Marks are
// deliberately not checked here; absent marks coerce to zero upstream.
func ValidateBio(name, age, specialization string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Missing required fields")
	}
	if strings.TrimSpace(age) == "" {
		errs.Add("age", "Missing required fields")
	}
	if strings.TrimSpace(specialization) == "" {
		errs.Add("specialization", "Missing required fields")
	} else if !domain.ValidSpecialization(specialization) {
		errs.Add("specialization", "Invalid specialization")
	}

	return errs
}
