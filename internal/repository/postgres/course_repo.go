package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lukam/admitly/internal/domain"
)

type CourseRepo struct {
	pool *pgxpool.Pool
}

func NewCourseRepo(pool *pgxpool.Pool) *CourseRepo {
	return &CourseRepo{pool: pool}
}

const courseColumns = "id, name, specialization_required, minimum_marks, created_at"

func (r *CourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var c domain.Course
	err := r.pool.QueryRow(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = $1", id).Scan(
		&c.ID, &c.Name, &c.SpecializationRequired, &c.MinimumMarks, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepo) ListEligible(ctx context.Context, specialization string, marks12th float64) ([]domain.Course, error) {
	query := "SELECT " + courseColumns + ` FROM courses
		WHERE specialization_required = $1 AND minimum_marks <= $2
		ORDER BY minimum_marks, name`

	rows, err := r.pool.Query(ctx, query, specialization, marks12th)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

func (r *CourseRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}

	rows, err := r.pool.Query(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

func scanCourses(rows pgx.Rows) ([]domain.Course, error) {
	courses := []domain.Course{}
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.SpecializationRequired, &c.MinimumMarks, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
