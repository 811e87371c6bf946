package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"school_reports_backend/internal/model"
	"school_reports_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	studentKeyPrefix = "school_reports:student:"
	rosterKeyPrefix  = "school_reports:roster:"
)

// CachedSource caches student and roster lookups in redis. Grades, tardies,
// electives and every write go straight to the wrapped Source. Redis failures
// are logged and fall through to the Source.
type CachedSource struct {
	Source
	Redis *redis.Client
	TTL   time.Duration
}

func NewCachedSource(src Source, rdb *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{Source: src, Redis: rdb, TTL: ttl}
}

func (s *CachedSource) load(ctx context.Context, key string, out interface{}) bool {
	val, err := s.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		logger.Log.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CachedSource) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, data, s.TTL).Err(); err != nil {
		logger.Log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CachedSource) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	key := fmt.Sprintf("%s%d", studentKeyPrefix, id)
	var student model.Student
	if s.load(ctx, key, &student) {
		return &student, nil
	}

	fresh, err := s.Source.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, fresh)
	return fresh, nil
}

func (s *CachedSource) ListCourseStudents(ctx context.Context, courseID uint) ([]model.Student, error) {
	key := fmt.Sprintf("%s%d", rosterKeyPrefix, courseID)
	var students []model.Student
	if s.load(ctx, key, &students) {
		return students, nil
	}

	fresh, err := s.Source.ListCourseStudents(ctx, courseID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, fresh)
	return fresh, nil
}

// Enroll and Unenroll change no cached data but drop the student entry so a
// following report sees fresh data.
func (s *CachedSource) Enroll(ctx context.Context, electiveID, studentID uint) error {
	if err := s.Source.Enroll(ctx, electiveID, studentID); err != nil {
		return err
	}
	s.Invalidate(ctx, studentID)
	return nil
}

func (s *CachedSource) Unenroll(ctx context.Context, electiveID, studentID uint) error {
	if err := s.Source.Unenroll(ctx, electiveID, studentID); err != nil {
		return err
	}
	s.Invalidate(ctx, studentID)
	return nil
}

// Invalidate drops the cached student entry.
func (s *CachedSource) Invalidate(ctx context.Context, studentID uint) {
	if err := s.Redis.Del(ctx, fmt.Sprintf("%s%d", studentKeyPrefix, studentID)).Err(); err != nil {
		logger.Log.Warn("cache invalidate failed", zap.Uint("student", studentID), zap.Error(err))
	}
}
