// Package cache provides a redis-backed cache for eligible-course query
// results. The catalog is immutable through the API, so entries only need a
// short TTL and no invalidation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lukam/admitly/internal/domain"
)

const eligibleTTL = 5 * time.Minute

type Courses struct {
	rdb *redis.Client
	log *logrus.Logger
}

func NewCourses(redisURL string, log *logrus.Logger) (*Courses, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return &Courses{rdb: redis.NewClient(opts), log: log}, nil
}

func eligibleKey(specialization string, marks12th float64) string {
	return fmt.Sprintf("eligible:%s:%g", specialization, marks12th)
}

// GetEligible returns the cached result set and whether it was present.
// Redis errors count as a miss.
func (c *Courses) GetEligible(ctx context.Context, specialization string, marks12th float64) ([]domain.Course, bool) {
	raw, err := c.rdb.Get(ctx, eligibleKey(specialization, marks12th)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).Debug("course cache read failed")
		}
		return nil, false
	}

	var courses []domain.Course
	if err := json.Unmarshal([]byte(raw), &courses); err != nil {
		c.log.WithError(err).Debug("course cache entry corrupt")
		return nil, false
	}
	return courses, true
}

// SetEligible stores the result set. Failures are logged and ignored.
func (c *Courses) SetEligible(ctx context.Context, specialization string, marks12th float64, courses []domain.Course) {
	raw, err := json.Marshal(courses)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, eligibleKey(specialization, marks12th), raw, eligibleTTL).Err(); err != nil {
		c.log.WithError(err).Debug("course cache write failed")
	}
}
