package login

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

const (
	SESSION_TOKEN = "test-session-token"
	USERNAME      = "test-user"
	EMAIL         = c.Email("test@test.test")
	RAW_PASSWORD  = user.RawPassword("test-password")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger                *logging.FakeLogger
	UserRepository        *user.FakeUserRepository
	SessionRepository     *user.FakeSessionRepository
	PasswordHasher        *user.FakePasswordHasher
	SessionTokenGenerator *user.FakeSessionTokenGenerator
	Service               services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.SessionRepository = user.NewFakeSessionRepository(suite.UserRepository)
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.SessionTokenGenerator = user.NewFakeSessionTokenGenerator(SESSION_TOKEN)
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.SessionRepository,
		suite.PasswordHasher,
		suite.SessionTokenGenerator,
		func() time.Time { return NOW },
	)
}

func TestLogInService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(role user.Role, withPassword bool) user.User {
	ctx := context.Background()
	u, err := suite.UserRepository.Create(ctx, user.CreateUserInput{
		Username:  USERNAME,
		Email:     EMAIL,
		Role:      role,
		CreatedAt: NOW.Add(-time.Hour),
	})
	suite.Require().Nil(err)
	if !withPassword {
		return u
	}
	hash, err := suite.PasswordHasher.HashPassword(RAW_PASSWORD)
	suite.Require().Nil(err)
	u, err = suite.UserRepository.Update(ctx, user.UpdateUserInput{
		ID:                   u.ID,
		DoPasswordHashUpdate: true,
		PasswordHash:         hash,
		At:                   NOW.Add(-time.Hour),
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestSuccessWithUsername() {
	u := suite.createUser(user.RoleAdministrador, true)

	result, err := suite.Service.Run(context.Background(), Input{
		UsernameOrEmail: USERNAME,
		Password:        RAW_PASSWORD,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.SessionToken(SESSION_TOKEN), result.Token)
	assert.Equal(u.ID, result.User.ID)
	assert.True(result.CanManageCompanies)

	sessionUser, err := suite.SessionRepository.GetUserByToken(context.Background(), result.Token)
	assert.Nil(err)
	assert.Equal(u.ID, sessionUser.ID)
}

func (suite *testSuite) TestSuccessWithEmail() {
	u := suite.createUser(user.RoleAdministrador, true)

	result, err := suite.Service.Run(context.Background(), Input{
		UsernameOrEmail: string(EMAIL),
		Password:        RAW_PASSWORD,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(u.ID, result.User.ID)
}

func (suite *testSuite) TestUnknownUser() {
	_, err := suite.Service.Run(context.Background(), Input{
		UsernameOrEmail: "unknown",
		Password:        RAW_PASSWORD,
	})

	suite.Require().True(errors.Is(err, user.ErrInvalidCredentials))
}

func (suite *testSuite) TestInvalidPassword() {
	suite.createUser(user.RoleAdministrador, true)

	_, err := suite.Service.Run(context.Background(), Input{
		UsernameOrEmail: USERNAME,
		Password:        user.RawPassword("wrong-password"),
	})

	suite.Require().True(errors.Is(err, user.ErrInvalidCredentials))
}

func (suite *testSuite) TestPasswordNotSet() {
	suite.createUser(user.RoleAdministrador, false)

	_, err := suite.Service.Run(context.Background(), Input{
		UsernameOrEmail: USERNAME,
		Password:        RAW_PASSWORD,
	})

	suite.Require().True(errors.Is(err, user.ErrPasswordNotSet))
}

func (suite *testSuite) TestSessionCreationError() {
	suite.createUser(user.RoleAdministrador, true)
	suite.SessionRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{
		UsernameOrEmail: USERNAME,
		Password:        RAW_PASSWORD,
	})

	suite.Require().NotNil(err)
}
