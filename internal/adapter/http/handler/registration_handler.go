package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	. "accountsapi/internal/adapter/http/helper"
	. "accountsapi/internal/adapter/http/validation"
	"accountsapi/internal/core/domain"
	"accountsapi/internal/core/model/request"
	"accountsapi/internal/core/port"
	"accountsapi/internal/core/telemetry"
	"accountsapi/internal/core/util"
)

type RegistrationHandler struct {
	svc     port.RegistrationService
	metrics *telemetry.AppMetrics
	logger  *zap.Logger
}

func NewRegistrationHandler(svc port.RegistrationService, metrics *telemetry.AppMetrics, logger *zap.Logger) *RegistrationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RegistrationHandler{
		svc:     svc,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.BindJSON[request.RegisterRequest](c)

	if err != nil {
		h.metrics.RecordRegistration(ctx, "failed")
		h.logger.Warn("Registration body could not be decoded", zap.Error(err))
		SendInternalError(c, err)
		return
	}

	if err := Validator.Struct(params); err != nil {
		h.metrics.RecordRegistration(ctx, "invalid")
		SendValidationError(c, err)
		return
	}

	user, err := h.svc.Register(ctx, &params)

	switch {
	case err == nil:
		h.metrics.RecordRegistration(ctx, "created")
		SendCreated(c, user)
	case errors.Is(err, domain.ErrEmailAlreadyRegistered):
		h.metrics.RecordRegistration(ctx, "conflict")
		SendConflict(c, MessageEmailRegistered)
	case errors.Is(err, domain.ErrDuplicateEmail):
		h.metrics.RecordRegistration(ctx, "duplicate")
		SendConflict(c, MessageDuplicateEmail)
	case errors.Is(err, domain.ErrUserNotInserted):
		h.metrics.RecordRegistration(ctx, "failed")
		h.logger.Error("Registration inserted no row", zap.Error(err))
		SendError(c, http.StatusInternalServerError, MessageNotInserted)
	default:
		h.metrics.RecordRegistration(ctx, "failed")
		h.logger.Error("Registration failed", zap.Error(err))
		SendInternalError(c, err)
	}
}
