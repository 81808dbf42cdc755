package deleteuser

import (
	"context"
	"errors"
	"testing"
	"time"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"

	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.Service = New(suite.Logger, suite.UserRepository)
}

func TestDeleteUserService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	u, err := suite.UserRepository.Create(ctx, user.CreateUserInput{
		Username:  "test-user",
		Email:     c.Email("test@test.test"),
		Role:      user.RoleAdministrador,
		CreatedAt: time.Now().UTC(),
	})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{ID: u.ID})

	assert := suite.Require()
	assert.Nil(err)
	_, err = suite.UserRepository.GetByID(ctx, u.ID)
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestUserDoesNotExist() {
	_, err := suite.Service.Run(context.Background(), Input{ID: user.ID(111)})

	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}
