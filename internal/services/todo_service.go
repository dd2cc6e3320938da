package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTodoNotFound    = errors.New("item not found")
	ErrInvalidPriority = fmt.Errorf("priority must be between %d and %d", constants.MinPriority, constants.MaxPriority)
)

// TodoListCache holds a copy of the public todo listing. SetAll must drop
// the write when Invalidate ran after generation was read.
type TodoListCache interface {
	GetAll(ctx context.Context) ([]models.Todo, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetAll(ctx context.Context, generation int64, list []models.Todo) error
	Invalidate(ctx context.Context) error
}

// TodoService handles todo business logic
type TodoService struct {
	todoRepo repository.TodoRepository
	cache    TodoListCache
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
	}
}

// WithCache serves ListAll through cache. Cache failures are logged and
// never fail a request.
func (s *TodoService) WithCache(cache TodoListCache) *TodoService {
	s.cache = cache
	return s
}

// TodoInput carries the writable fields of a todo
type TodoInput struct {
	Title       string
	Description *string
	Priority    int
	Complete    bool
}

func (in TodoInput) validate() error {
	if in.Priority < constants.MinPriority || in.Priority > constants.MaxPriority {
		return ErrInvalidPriority
	}
	return nil
}

// ListAll returns every todo in the system, unfiltered by owner
func (s *TodoService) ListAll(ctx context.Context) ([]models.Todo, error) {
	fill := false
	var generation int64
	if s.cache != nil {
		todos, ok, err := s.cache.GetAll(ctx)
		if err != nil {
			log.Printf("todo cache read failed: %v", err)
		} else if ok {
			return todos, nil
		}

		// The generation is read before the store so a write that lands
		// in between voids the fill.
		generation, err = s.cache.Generation(ctx)
		if err != nil {
			log.Printf("todo cache read failed: %v", err)
		} else {
			fill = true
		}
	}

	todos, err := s.todoRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	if fill {
		if err := s.cache.SetAll(ctx, generation, todos); err != nil {
			log.Printf("todo cache write failed: %v", err)
		}
	}
	return todos, nil
}

// ListMine returns the todos owned by the caller
func (s *TodoService) ListMine(ctx context.Context, identity Identity) ([]models.Todo, error) {
	todos, err := s.todoRepo.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Get returns one of the caller's todos. Todos owned by others are reported
// as ErrTodoNotFound so their existence is not revealed.
func (s *TodoService) Get(ctx context.Context, identity Identity, id uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindOwned(ctx, id, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

// Create stores a new todo owned by the caller
func (s *TodoService) Create(ctx context.Context, identity Identity, input TodoInput) (*models.Todo, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Complete:    input.Complete,
		OwnerID:     identity.UserID,
	}
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	s.invalidate(ctx)
	return todo, nil
}

// Update overwrites every field of one of the caller's todos. Ownership
// never changes. The write itself is filtered by owner, so a todo deleted
// concurrently is reported as ErrTodoNotFound rather than recreated.
func (s *TodoService) Update(ctx context.Context, identity Identity, id uint64, input TodoInput) (*models.Todo, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Complete:    input.Complete,
		OwnerID:     identity.UserID,
	}
	if err := s.todoRepo.UpdateOwned(ctx, todo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	s.invalidate(ctx)
	return todo, nil
}

// Delete removes one of the caller's todos
func (s *TodoService) Delete(ctx context.Context, identity Identity, id uint64) error {
	if err := s.todoRepo.DeleteOwned(ctx, id, identity.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *TodoService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("todo cache invalidation failed: %v", err)
	}
}
