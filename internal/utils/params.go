package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
)

// ParseIDParam reads a positive integer path parameter. On failure it
// writes a 422 response and returns false.
func ParseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.UnprocessableEntity(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
