package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/capstone/internal/app/models/dto"
)

// BindJSON binds and validates a JSON body into obj. On failure it writes a
// 400 response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	return bindWith(c, obj, binding.JSON)
}

// Bind binds obj using the request content type (JSON or multipart form)
func Bind(c *gin.Context, obj interface{}) bool {
	return bindWith(c, obj, binding.Default(c.Request.Method, c.ContentType()))
}

func bindWith(c *gin.Context, obj interface{}, b binding.Binding) bool {
	if err := c.ShouldBindWith(obj, b); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return false
	}
	return true
}
