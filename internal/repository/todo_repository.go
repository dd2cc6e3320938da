package repository

import (
	"context"

	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create inserts a new todo
func (r *GormTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// ListAll returns every todo regardless of owner
func (r *GormTodoRepository) ListAll(ctx context.Context) ([]models.Todo, error) {
	todos := []models.Todo{}
	if err := r.db.WithContext(ctx).Order("id").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// ListByOwner returns the todos owned by a user
func (r *GormTodoRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]models.Todo, error) {
	todos := []models.Todo{}
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		Order("id").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// FindOwned finds a todo by ID that belongs to the given owner.
// A todo owned by someone else is reported as gorm.ErrRecordNotFound.
func (r *GormTodoRepository) FindOwned(ctx context.Context, id, ownerID uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateOwned overwrites the writable fields of todo.ID when it belongs to
// todo.OwnerID. It returns gorm.ErrRecordNotFound when no row matched.
func (r *GormTodoRepository) UpdateOwned(ctx context.Context, todo *models.Todo) error {
	result := r.db.WithContext(ctx).
		Model(&models.Todo{}).
		Scopes(database.OwnedBy(todo.OwnerID)).
		Where("id = ?", todo.ID).
		Updates(map[string]any{
			"title":       todo.Title,
			"description": todo.Description,
			"priority":    todo.Priority,
			"complete":    todo.Complete,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOwned deletes a todo by ID that belongs to the given owner.
// It returns gorm.ErrRecordNotFound when no row matched.
func (r *GormTodoRepository) DeleteOwned(ctx context.Context, id, ownerID uint64) error {
	result := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID)).
		Delete(&models.Todo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
