package domain

import (
	"time"

	"github.com/google/uuid"
)

// Application workflow states.
const (
	StatusPending     = "Pending"
	StatusUnderReview = "Under Review"
	StatusApproved    = "Approved"
	StatusRejected    = "Rejected"
)

// Specializations is the fixed set of academic tracks a user can declare.
var Specializations = []string{"Accounts", "Biology", "Mathematics", "Computer Science"}

// ValidSpecialization reports whether s is one of the known tracks.
func ValidSpecialization(s string) bool {
	for _, known := range Specializations {
		if s == known {
			return true
		}
	}
	return false
}

type User struct {
	ID                uuid.UUID   `json:"id"`
	Email             string      `json:"email"`
	Username          string      `json:"username"`
	PasswordHash      string      `json:"-"`
	PhoneNumber       string      `json:"phonenumber"`
	BioData           *BioData    `json:"bioData,omitempty"`
	CoursesApplied    []uuid.UUID `json:"coursesApplied"`
	ApplicationStatus string      `json:"applicationStatus"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// BioData is a user's academic/biographical submission. A nil BioData on User
// means the bio has not been submitted yet.
type BioData struct {
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	Specialization string   `json:"specialization"`
	Marks10th      float64  `json:"marks10th"`
	Marks12th      float64  `json:"marks12th"`
	Certificates   []string `json:"certificates"`
}

// HasApplied reports whether courseID is already present in CoursesApplied.
func (u *User) HasApplied(courseID uuid.UUID) bool {
	for _, id := range u.CoursesApplied {
		if id == courseID {
			return true
		}
	}
	return false
}
