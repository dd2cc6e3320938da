package repository

import (
	"context"

	"github.com/yukikurage/todo-api/internal/models"
)

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create inserts a new todo
	Create(ctx context.Context, todo *models.Todo) error

	// ListAll returns every todo regardless of owner
	ListAll(ctx context.Context) ([]models.Todo, error)

	// ListByOwner returns the todos owned by a user
	ListByOwner(ctx context.Context, ownerID uint64) ([]models.Todo, error)

	// FindOwned finds a todo by ID that belongs to the given owner
	FindOwned(ctx context.Context, id, ownerID uint64) (*models.Todo, error)

	// UpdateOwned overwrites a todo that belongs to todo.OwnerID
	UpdateOwned(ctx context.Context, todo *models.Todo) error

	// DeleteOwned deletes a todo by ID that belongs to the given owner
	DeleteOwned(ctx context.Context, id, ownerID uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}
