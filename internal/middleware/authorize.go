package middleware

import (
	"github.com/gin-gonic/gin"

	"hr-admin/internal/access"
	"hr-admin/internal/shared/apperror"
	"hr-admin/internal/shared/response"
)

// Authorize gates a route group on the capability check for one entity
// kind. It maps the HTTP verb to an operation, reads the subject planted
// by AuthMiddleware, and aborts before any handler or storage code runs.
func Authorize(decider access.Decider, entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		op, ok := access.OperationForMethod(c.Request.Method)
		if !ok {
			response.MethodNotAllowed(c)
			c.Abort()
			return
		}

		subject := access.Subject{UserID: c.GetString("user_id")}
		if raw, exists := c.Get("roles"); exists {
			if roles, ok := raw.([]string); ok {
				subject.Roles = roles
			}
		}

		allowed, err := decider.CanAccess(subject, entity, op)
		if err != nil {
			response.Error(c, apperror.ErrInternal.HTTPStatus, apperror.ErrInternal.Code, apperror.ErrInternal.Message, nil)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
