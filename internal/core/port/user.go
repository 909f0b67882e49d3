package port

import (
	"context"

	"accountsapi/internal/core/domain"
	"accountsapi/internal/core/model/request"
)

type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

type RegistrationService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*domain.User, error)
}
