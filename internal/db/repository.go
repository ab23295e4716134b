package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsmarket/skillsmarket/internal/models"
)

// EventRepository provides access to the durable engagement event log
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(database *DB) *EventRepository {
	if database == nil {
		return nil
	}
	return &EventRepository{db: database.DB}
}

// Record appends one engagement event. The event ID is assigned here when empty.
func (r *EventRepository) Record(ctx context.Context, event *models.SkillEvent) error {
	if r == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// CountSince counts events of one kind for a skill since the given time
func (r *EventRepository) CountSince(ctx context.Context, slug string, kind models.EventKind, since time.Time) (int64, error) {
	if r == nil {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SkillEvent{}).
		Where("slug = ? AND kind = ? AND created_at >= ?", slug, string(kind), since).
		Count(&count).Error
	return count, err
}

// RecentBySlug returns the most recent events for a skill, newest first
func (r *EventRepository) RecentBySlug(ctx context.Context, slug string, limit int) ([]models.SkillEvent, error) {
	if r == nil {
		return nil, nil
	}
	var events []models.SkillEvent
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
