package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lukam/admitly/internal/domain"
	"github.com/lukam/admitly/internal/transport/http/middleware"
)

type fakeUserRepo struct {
	users []*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
		}
	}
	return nil
}

type fakeCourseRepo struct {
	courses []domain.Course
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	for _, c := range f.courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCourseRepo) ListEligible(_ context.Context, specialization string, marks12th float64) ([]domain.Course, error) {
	eligible := []domain.Course{}
	for _, c := range f.courses {
		if c.SpecializationRequired == specialization && c.MinimumMarks <= marks12th {
			eligible = append(eligible, c)
		}
	}
	return eligible, nil
}

func (f *fakeCourseRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Course, error) {
	matched := []domain.Course{}
	for _, c := range f.courses {
		for _, id := range ids {
			if c.ID == id {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedUser(repo *fakeUserRepo) *domain.User {
	user := &domain.User{
		ID:                uuid.New(),
		Email:             "a@x.com",
		Username:          "alice",
		PhoneNumber:       "555",
		CoursesApplied:    []uuid.UUID{},
		ApplicationStatus: domain.StatusPending,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	repo.users = append(repo.users, user)
	return user
}

// asUser attaches an authenticated identity the way the auth middleware does.
func asUser(t *testing.T, req *http.Request, userID uuid.UUID) *http.Request {
	t.Helper()
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}
