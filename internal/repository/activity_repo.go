package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/noah-isme/gema-activities/internal/models"
)

var (
	// ErrActivityNotFound indicates the activity name is not in the registry.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrParticipantExists indicates the email is already on the roster.
	ErrParticipantExists = errors.New("participant already on roster")
	// ErrParticipantMissing indicates the email is not on the roster.
	ErrParticipantMissing = errors.New("participant not on roster")
)

// ActivityRepository provides access to the activity registry.
type ActivityRepository interface {
	Seed(ctx context.Context, activities []models.Activity) error
	List(ctx context.Context) ([]models.Activity, error)
	AddParticipant(ctx context.Context, name, email string) (models.Activity, error)
	RemoveParticipant(ctx context.Context, name, email string) (models.Activity, error)
}

// MemoryActivityRepository keeps the registry in process memory. Every membership
// check runs under the same lock as the mutation it guards.
type MemoryActivityRepository struct {
	mu         sync.RWMutex
	activities map[string]*models.Activity
}

// NewMemoryActivityRepository constructs an empty in-memory registry.
func NewMemoryActivityRepository() *MemoryActivityRepository {
	return &MemoryActivityRepository{activities: make(map[string]*models.Activity)}
}

// Seed replaces the registry content. Duplicate emails within a roster keep their first occurrence.
func (r *MemoryActivityRepository) Seed(_ context.Context, activities []models.Activity) error {
	seeded := make(map[string]*models.Activity, len(activities))
	for _, activity := range activities {
		record := activity.Clone()
		record.Participants = dedupe(record.Participants)
		seeded[record.Name] = &record
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = seeded
	return nil
}

// List returns a snapshot of every activity sorted by name.
func (r *MemoryActivityRepository) List(_ context.Context) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Activity, 0, len(r.activities))
	for _, activity := range r.activities {
		result = append(result, activity.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

// Get returns a snapshot of a single activity.
func (r *MemoryActivityRepository) Get(_ context.Context, name string) (models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.activities[name]
	if !ok {
		return models.Activity{}, ErrActivityNotFound
	}
	return activity.Clone(), nil
}

func (r *MemoryActivityRepository) AddParticipant(_ context.Context, name, email string) (models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return models.Activity{}, ErrActivityNotFound
	}
	if activity.HasParticipant(email) {
		return models.Activity{}, ErrParticipantExists
	}

	activity.Participants = append(activity.Participants, email)
	return activity.Clone(), nil
}

func (r *MemoryActivityRepository) RemoveParticipant(_ context.Context, name, email string) (models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return models.Activity{}, ErrActivityNotFound
	}

	index := -1
	for i, participant := range activity.Participants {
		if participant == email {
			index = i
			break
		}
	}
	if index < 0 {
		return models.Activity{}, ErrParticipantMissing
	}

	activity.Participants = append(activity.Participants[:index], activity.Participants[index+1:]...)
	return activity.Clone(), nil
}

func dedupe(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	result := make([]string, 0, len(emails))
	for _, email := range emails {
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		result = append(result, email)
	}
	return result
}
