package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"accountsapi/internal/adapter/database"
	"accountsapi/internal/adapter/database/repository"
	"accountsapi/internal/core/domain"
	"accountsapi/internal/core/model/request"
	"accountsapi/internal/core/port"
	"accountsapi/internal/core/service"
	"accountsapi/internal/core/util"
	. "accountsapi/pkg/test"
	"accountsapi/pkg/test/factory"
)

type RegistrationServiceTestSuite struct {
	suite.Suite
	manager *database.Manager[*database.DB]
	Service port.RegistrationService
}

func (s *RegistrationServiceTestSuite) SetupTest() {
	s.manager = InitTestDB(s.T())

	repo := repository.NewSQLUserRepository(s.manager, nil)
	s.Service = service.NewRegistrationService(repo, nil, nil)
}

func TestRegistrationServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(RegistrationServiceTestSuite))
}

func (s *RegistrationServiceTestSuite) TestService_Register_Success() {
	req := factory.NewRegisterRequest(map[string]any{"Email": "test@example.com"})

	user, err := s.Service.Register(context.Background(), &req)

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), user)
	assert.NotZero(s.T(), user.ID)
	assert.Equal(s.T(), "test@example.com", user.Email)
	assert.True(s.T(), user.Active)
	assert.NotEqual(s.T(), req.Password, user.PasswordHash)
	assert.NoError(s.T(), util.ComparePassword(req.Password, user.PasswordHash))
}

func (s *RegistrationServiceTestSuite) TestService_Register_OptionalFieldsBecomeNull() {
	req := request.RegisterRequest{
		Name:     "Juan",
		Email:    "juan@example.com",
		Password: "12345678",
		City:     "Lima",
	}

	user, err := s.Service.Register(context.Background(), &req)

	s.Require().NoError(err)
	Expect(user.LastName).To(BeNil())
	Expect(user.Phone).To(BeNil())
	Expect(user.BirthDate).To(BeNil())
	Expect(*user.City).To(Equal("Lima"))
}

func (s *RegistrationServiceTestSuite) TestService_Register_EmailAlreadyRegistered() {
	req := factory.NewRegisterRequest()

	_, err := s.Service.Register(context.Background(), &req)
	assert.NoError(s.T(), err)

	_, err = s.Service.Register(context.Background(), &req)

	assert.ErrorIs(s.T(), err, domain.ErrEmailAlreadyRegistered)
	assert.Equal(s.T(), 1, CountUsers(s.T(), s.manager))
}

type racingRepository struct {
	createErr error
}

func (r *racingRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *racingRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return domain.User{}, r.createErr
}

func TestRegistrationService_PropagatesRepositoryErrors(t *testing.T) {
	RegisterTestingT(t)

	cases := []error{
		domain.ErrDuplicateEmail,
		domain.ErrUserNotInserted,
		errors.New("database query failed: connection reset"),
	}

	for _, want := range cases {
		svc := service.NewRegistrationService(&racingRepository{createErr: want}, nil, nil)
		req := factory.NewRegisterRequest()

		user, err := svc.Register(context.Background(), &req)

		Expect(user).To(BeNil())
		Expect(err).To(MatchError(want))
	}
}
