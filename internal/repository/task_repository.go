package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

// TaskRepositoryInterface is the store surface the handlers depend on.
// Every lookup that targets a single task is scoped to (id, owner) together,
// so existence and authorization are checked as one condition.
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	GetByIDOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
	CountOwned(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetOwned retrieves all tasks belonging to a user, newest first. This is
// the store's arrival order; further filtering and sorting happens upstream.
func (r *TaskRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetByIDOwned retrieves a task by ID, restricted to the given owner.
// A task owned by someone else surfaces as ErrTaskNotFound.
func (r *TaskRepository) GetByIDOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// Update persists an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteOwned removes a task by ID, restricted to the given owner
func (r *TaskRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CountOwned returns the number of tasks belonging to a user
func (r *TaskRepository) CountOwned(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}
