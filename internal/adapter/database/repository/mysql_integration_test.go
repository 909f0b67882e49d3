//go:build integration

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"accountsapi/db/schema"
	"accountsapi/internal/adapter/database"
	"accountsapi/internal/adapter/database/mysql"
	"accountsapi/internal/adapter/database/repository"
	"accountsapi/internal/core/domain"
	"accountsapi/internal/core/port"
)

type MySQLUserRepositoryTestSuite struct {
	suite.Suite
	container testcontainers.Container
	manager   *database.Manager[*database.DB]
	repo      port.UserRepository
}

func (s *MySQLUserRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	req := testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "test",
				"MYSQL_DATABASE":      "accounts",
			},
			WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(2 * time.Minute),
		},
	}

	container, err := testcontainers.GenericContainer(ctx, req)
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)

	port, err := container.MappedPort(ctx, "3306")
	s.Require().NoError(err)

	s.manager = database.NewManager(mysql.NewDriver(mysql.Config{
		Host:     host,
		Port:     port.Port(),
		User:     "root",
		Password: "test",
		Name:     "accounts",
	}))

	ddl, err := schema.For("mysql")
	s.Require().NoError(err)

	// The server may still refuse connections right after the log line;
	// failed opens are retried by the manager.
	Eventually(func() error {
		return s.manager.Do(ctx, func(ctx context.Context, db *database.DB) error {
			_, err := db.ExecContext(ctx, ddl)
			return err
		})
	}, time.Minute, time.Second).Should(Succeed())

	s.repo = repository.NewSQLUserRepository(s.manager, nil)
}

func (s *MySQLUserRepositoryTestSuite) TearDownSuite() {
	if s.manager != nil {
		s.manager.Close()
	}

	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

func TestMySQLUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(MySQLUserRepositoryTestSuite))
}

func (s *MySQLUserRepositoryTestSuite) TestCreateAndDuplicate() {
	ctx := context.Background()

	user, err := s.repo.Create(ctx, newUser("mysql@example.com"))
	s.Require().NoError(err)
	Expect(user.ID).To(BeNumerically(">", 0))

	exists, err := s.repo.ExistsByEmail(ctx, "mysql@example.com")
	s.Require().NoError(err)
	Expect(exists).To(BeTrue())

	_, err = s.repo.Create(ctx, newUser("mysql@example.com"))
	Expect(err).To(MatchError(domain.ErrDuplicateEmail))
}

func (s *MySQLUserRepositoryTestSuite) TestPoolRecoversAfterInvalidate() {
	ctx := context.Background()

	s.manager.Invalidate(errors.New("forced by test"))

	exists, err := s.repo.ExistsByEmail(ctx, "nobody@example.com")

	s.Require().NoError(err)
	Expect(exists).To(BeFalse())
}
