package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/dto"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/services"
	"github.com/yukikurage/todo-api/internal/utils"
)

type TodoHandler struct {
	todoService *services.TodoService
}

func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ReadAll returns every todo in the system. The route is unauthenticated.
func (h *TodoHandler) ReadAll(c *gin.Context) {
	todos, err := h.todoService.ListAll(c.Request.Context())
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTOs(todos))
}

// ReadUserTodos returns the caller's todos
func (h *TodoHandler) ReadUserTodos(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	todos, err := h.todoService.ListMine(c.Request.Context(), identity)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTOs(todos))
}

// ReadTodo returns one of the caller's todos by ID
func (h *TodoHandler) ReadTodo(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	todo, err := h.todoService.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// CreateTodo creates a todo owned by the caller
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	if _, err := h.todoService.Create(c.Request.Context(), identity, req.ToInput()); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewStatusResponse(http.StatusCreated))
}

// UpdateTodo overwrites one of the caller's todos
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	if _, err := h.todoService.Update(c.Request.Context(), identity, id, req.ToInput()); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatusResponse(http.StatusOK))
}

// DeleteTodo deletes one of the caller's todos
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.todoService.Delete(c.Request.Context(), identity, id); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatusResponse(http.StatusOK))
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
