package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lukam/admitly/internal/domain"
	"github.com/lukam/admitly/internal/repository"
)

var (
	ErrUserMissing    = errors.New("user not found")
	ErrNoBioData      = errors.New("please submit your bio data first")
	ErrAlreadyApplied = errors.New("already applied to this course")
)

// CourseCache caches eligible-course query results. Implementations must
// treat misses and internal failures identically (return ok=false).
type CourseCache interface {
	GetEligible(ctx context.Context, specialization string, marks12th float64) ([]domain.Course, bool)
	SetEligible(ctx context.Context, specialization string, marks12th float64, courses []domain.Course)
}

// Notifier pushes application lifecycle events to connected clients.
type Notifier interface {
	ApplicationReceived(userID, courseID uuid.UUID)
	StatusChanged(userID uuid.UUID, status string)
}

type AdmissionService struct {
	userRepo   repository.UserRepository
	courseRepo repository.CourseRepository
	cache      CourseCache // optional
	notifier   Notifier    // optional
}

func NewAdmissionService(userRepo repository.UserRepository, courseRepo repository.CourseRepository, cache CourseCache, notifier Notifier) *AdmissionService {
	return &AdmissionService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		cache:      cache,
		notifier:   notifier,
	}
}

type BioInput struct {
	Name           string
	Age            int
	Specialization string
	Marks10th      float64
	Marks12th      float64
	Certificates   []string
}

// SubmitBio replaces the user's bio data wholesale. Certificate filenames from
// a previous submission are discarded along with the rest; the files stay on
// disk.
func (s *AdmissionService) SubmitBio(ctx context.Context, userID uuid.UUID, input BioInput) (*domain.BioData, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserMissing
	}

	certs := input.Certificates
	if certs == nil {
		certs = []string{}
	}

	user.BioData = &domain.BioData{
		Name:           input.Name,
		Age:            input.Age,
		Specialization: input.Specialization,
		Marks10th:      input.Marks10th,
		Marks12th:      input.Marks12th,
		Certificates:   certs,
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("saving bio data: %w", err)
	}

	return user.BioData, nil
}

type DiscoveryResult struct {
	Available  []domain.Course
	Applied    []domain.Course // populated, only when requested
	AppliedIDs []uuid.UUID
}

// Discover returns courses matching the user's specialization with a minimum
// marks requirement at or below the user's 12th-grade marks, plus the user's
// existing applications. With populateApplied the applications are resolved to
// full course records, otherwise they stay raw references.
func (s *AdmissionService) Discover(ctx context.Context, userID uuid.UUID, populateApplied bool) (*DiscoveryResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserMissing
	}
	if user.BioData == nil || user.BioData.Specialization == "" {
		return nil, ErrNoBioData
	}

	available, err := s.eligibleCourses(ctx, user.BioData.Specialization, user.BioData.Marks12th)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}

	result := &DiscoveryResult{
		Available:  available,
		AppliedIDs: user.CoursesApplied,
	}

	if populateApplied {
		applied, err := s.courseRepo.ListByIDs(ctx, user.CoursesApplied)
		if err != nil {
			return nil, fmt.Errorf("resolving applied courses: %w", err)
		}
		result.Applied = applied
	}

	return result, nil
}

func (s *AdmissionService) eligibleCourses(ctx context.Context, specialization string, marks12th float64) ([]domain.Course, error) {
	if s.cache != nil {
		if courses, ok := s.cache.GetEligible(ctx, specialization, marks12th); ok {
			return courses, nil
		}
	}

	courses, err := s.courseRepo.ListEligible(ctx, specialization, marks12th)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetEligible(ctx, specialization, marks12th, courses)
	}
	return courses, nil
}

// ApplyDirect appends courseID to the user's applications without any
// duplicate or existence check, moves the application status to Under Review,
// and returns the updated user. Calling it twice with the same course records
// the course twice.
func (s *AdmissionService) ApplyDirect(ctx context.Context, userID, courseID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserMissing
	}

	user.CoursesApplied = append(user.CoursesApplied, courseID)
	user.ApplicationStatus = domain.StatusUnderReview
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("saving application: %w", err)
	}

	if s.notifier != nil {
		s.notifier.ApplicationReceived(user.ID, courseID)
		s.notifier.StatusChanged(user.ID, user.ApplicationStatus)
	}

	return user, nil
}

// ApplyGuarded appends courseID only if the user has not applied to it yet and
// leaves the application status untouched.
func (s *AdmissionService) ApplyGuarded(ctx context.Context, userID, courseID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserMissing
	}
	if user.HasApplied(courseID) {
		return ErrAlreadyApplied
	}

	user.CoursesApplied = append(user.CoursesApplied, courseID)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("saving application: %w", err)
	}

	if s.notifier != nil {
		s.notifier.ApplicationReceived(user.ID, courseID)
	}

	return nil
}
