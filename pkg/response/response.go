package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/taleemtrack/taleemtrack-cli/pkg/errors"
)

// The TaleemTrack wire contract uses bare JSON bodies: resources and
// collections are serialized directly, errors as {code, message}. These
// helpers keep the dev server handlers on that contract.

// JSON sends a success response with the payload as the whole body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response, normalising err into the wire shape.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, appErr)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
