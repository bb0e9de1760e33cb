package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam извлекает числовой параметр URL и кладет его в контекст Gin
// под ключом contextKey. Идентификаторы сущностей всегда положительные,
// поэтому ноль отклоняется наравне с нечисловыми значениями.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid " + paramName,
				"error_type": "param_invalid",
			})
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
