package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lukam/admitly/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update persists the mutable part of the user document wholesale
	// (bio data, applications, status). Last write wins.
	Update(ctx context.Context, user *domain.User) error
}

type CourseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	// ListEligible returns courses whose required specialization equals
	// specialization and whose minimum marks do not exceed marks12th.
	ListEligible(ctx context.Context, specialization string, marks12th float64) ([]domain.Course, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Course, error)
}
