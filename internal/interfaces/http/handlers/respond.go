// Package handlers implements the gin HTTP handlers of the compliance API.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
)

// respondError writes the structured error body with its mapped status.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), apperrors.ToResponse(err))
}

// pathID parses the named int64 path parameter, rejecting non-numeric values.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.NewValidationf("%s must be a positive integer", name)
	}
	return id, nil
}
