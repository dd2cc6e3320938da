package dto

import (
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/services"
)

// TodoRequest is the body accepted by create and update
type TodoRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Priority    int     `json:"priority" binding:"min=1,max=5"`
	Complete    *bool   `json:"complete" binding:"required"`
}

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    int     `json:"priority"`
	Complete    bool    `json:"complete"`
	OwnerID     uint64  `json:"owner_id"`
}

// StatusResponse acknowledges a write
type StatusResponse struct {
	Status      int    `json:"status"`
	Transaction string `json:"transaction"`
}

// Conversion functions

// ToInput converts a validated request into service input
func (r TodoRequest) ToInput() services.TodoInput {
	input := services.TodoInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
	}
	if r.Complete != nil {
		input.Complete = *r.Complete
	}
	return input
}

// ToTodoDTO converts a Todo model to TodoDTO
func ToTodoDTO(todo models.Todo) TodoDTO {
	return TodoDTO{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Complete:    todo.Complete,
		OwnerID:     todo.OwnerID,
	}
}

// ToTodoDTOs converts a slice of todos, never returning nil
func ToTodoDTOs(todos []models.Todo) []TodoDTO {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo)
	}
	return items
}

// NewStatusResponse builds the acknowledgement for a successful write
func NewStatusResponse(status int) StatusResponse {
	return StatusResponse{Status: status, Transaction: "successful"}
}
