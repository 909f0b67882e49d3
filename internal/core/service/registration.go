package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"accountsapi/internal/core/domain"
	"accountsapi/internal/core/model/request"
	"accountsapi/internal/core/port"
	tel "accountsapi/internal/core/telemetry"
	"accountsapi/internal/core/util"
)

type RegistrationService struct {
	repo      port.UserRepository
	telemetry port.Telemetry
	logger    *zap.Logger
}

func NewRegistrationService(repo port.UserRepository, telemetry port.Telemetry, logger *zap.Logger) *RegistrationService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &RegistrationService{
		repo:      repo,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Register checks the email is free, hashes the password and stores a new
// active user. Missing optional fields are stored as NULL.
func (rs *RegistrationService) Register(ctx context.Context, req *request.RegisterRequest) (user *domain.User, err error) {
	ctx, span := rs.telemetry.StartServiceSpan(ctx, "registration", "register")
	defer span.End()

	start := time.Now()

	defer func() {
		rs.telemetry.RecordServiceOperation(ctx, "registration", "register", time.Since(start), err)
	}()

	exists, err := rs.repo.ExistsByEmail(ctx, req.Email)

	if err != nil {
		return nil, err
	}

	if exists {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	hashed, err := util.HashPassword(req.Password)

	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	saved, err := rs.repo.Create(ctx, domain.User{
		Name:         req.Name,
		LastName:     domain.NullIfEmpty(req.LastName),
		Email:        req.Email,
		PasswordHash: hashed,
		BirthDate:    domain.NullIfEmpty(req.BirthDate),
		Phone:        domain.NullIfEmpty(req.Phone),
		Address:      domain.NullIfEmpty(req.Address),
		City:         domain.NullIfEmpty(req.City),
		Country:      domain.NullIfEmpty(req.Country),
		Active:       true,
	})

	if err != nil {
		return nil, err
	}

	rs.telemetry.RecordBusinessEvent(ctx, "user.registered", "usuarios", strconv.FormatInt(saved.ID, 10))
	rs.logger.Info("User registered", zap.Int64("user_id", saved.ID))

	return &saved, nil
}
