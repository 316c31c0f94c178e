package vacation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hr-admin/internal/query"
	"hr-admin/internal/schema"
	"hr-admin/internal/shared/apperror"
	"hr-admin/internal/shared/response"
)

type Handler struct {
	service Service
	desc    schema.Descriptor
	logger  *zap.Logger
}

func NewHandler(service Service, desc schema.Descriptor, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("vacation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.handler")
	}
	return &Handler{service: service, desc: desc, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("vacation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var payload schema.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "Invalid input", err.Error())
		return
	}

	payload = schema.Clean(payload)
	if verr := h.desc.ValidateCreate(payload); verr != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "Validation failed", verr.Fields)
		return
	}

	var req CreateVacationRequestRequest
	if err := schema.Decode(payload, &req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "Invalid input", nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) List(c *gin.Context) {
	p, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid list parameters", nil)
		return
	}

	resp, total, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.List(c, resp, total)
}

func (h *Handler) GetById(c *gin.Context) {
	p, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid parameters", nil)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Update(c *gin.Context) {
	var payload schema.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "Invalid input", err.Error())
		return
	}

	payload = schema.Clean(payload)
	if verr := h.desc.ValidateUpdate(payload); verr != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidationError, "Validation failed", verr.Fields)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete responds with the record as it was before removal.
func (h *Handler) Delete(c *gin.Context) {
	resp, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
