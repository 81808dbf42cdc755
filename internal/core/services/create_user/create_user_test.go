package createuser

import (
	"context"
	"errors"
	"testing"
	"time"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
	"useradmin/internal/core/domain/logging"
	uow "useradmin/internal/core/domain/unit_of_work"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	SET_PASSWORD_TOKEN = "test-set-password-token"
	USERNAME           = "test-user"
	EMAIL              = c.Email("test@test.test")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger                    *logging.FakeLogger
	UnitOfWork                *uow.FakeUnitOfWork
	SetPasswordTokenGenerator *user.FakeSetPasswordTokenGenerator
	Service                   services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.SetPasswordTokenGenerator = user.NewFakeSetPasswordTokenGenerator(SET_PASSWORD_TOKEN)
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.SetPasswordTokenGenerator,
		func() time.Time { return NOW },
	)
}

func TestCreateUserService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createCompany() company.Company {
	comp, err := suite.UnitOfWork.Context.CompanyRepository.Create(
		context.Background(),
		company.CreateInput{Name: "acme", CreatedAt: NOW},
	)
	suite.Require().Nil(err)
	return comp
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	comp := suite.createCompany()

	result, err := suite.Service.Run(ctx, Input{
		Username:              USERNAME,
		Email:                 EMAIL,
		PrivacyPolicyAccepted: true,
		Role:                  user.RoleUsuario,
		CompanyID:             c.NewOptional(comp.ID, true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(user.ID(0), result.User.ID)
	assert.Equal(USERNAME, result.User.Username)
	assert.Equal(EMAIL, result.User.Email)
	assert.Equal(user.RoleUsuario, result.User.Role)
	assert.True(result.User.PrivacyPolicyAccepted)
	assert.False(result.User.PasswordHash.IsPresent)
	assert.False(result.User.IsEmailVerified)
	assert.True(result.User.SetPasswordToken.IsPresent)
	assert.Equal(user.SetPasswordToken(SET_PASSWORD_TOKEN), result.User.SetPasswordToken.Value)
	assert.True(result.User.SetPasswordTokenExpiry.IsPresent)
	assert.Equal(NOW.Add(user.SetPasswordTokenValidDuration), result.User.SetPasswordTokenExpiry.Value)
	assert.Equal(NOW, result.User.CreatedAt)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestAdministradorWithoutCompany() {
	ctx := context.Background()

	result, err := suite.Service.Run(ctx, Input{
		Username: USERNAME,
		Email:    EMAIL,
		Role:     user.RoleAdministrador,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.User.CompanyID.IsPresent)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestCompanyRequiredForRole() {
	for _, role := range []user.Role{user.RoleUsuario, user.RoleSuperusuario} {
		suite.SetupTest()
		_, err := suite.Service.Run(context.Background(), Input{
			Username: USERNAME,
			Email:    EMAIL,
			Role:     role,
		})

		assert := suite.Require()
		assert.True(errors.Is(err, user.ErrCompanyRequired))
		assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	}
}

func (suite *testSuite) TestCompanyDoesNotExist() {
	_, err := suite.Service.Run(context.Background(), Input{
		Username:  USERNAME,
		Email:     EMAIL,
		Role:      user.RoleUsuario,
		CompanyID: c.NewOptional(company.ID(111), true),
	})

	assert := suite.Require()
	assert.True(errors.Is(err, company.ErrCompanyDoesNotExist))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
}

func (suite *testSuite) TestUsernameAlreadyExists() {
	ctx := context.Background()
	suite.UnitOfWork.Context.UserRepository.Create(ctx, user.CreateUserInput{
		Username:  USERNAME,
		Email:     c.Email("other@test.test"),
		Role:      user.RoleAdministrador,
		CreatedAt: NOW,
	})

	_, err := suite.Service.Run(ctx, Input{
		Username: USERNAME,
		Email:    EMAIL,
		Role:     user.RoleAdministrador,
	})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrUsernameAlreadyExists))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
}

func (suite *testSuite) TestEmailAlreadyExists() {
	ctx := context.Background()
	suite.UnitOfWork.Context.UserRepository.Create(ctx, user.CreateUserInput{
		Username:  "other-user",
		Email:     EMAIL,
		Role:      user.RoleAdministrador,
		CreatedAt: NOW,
	})

	_, err := suite.Service.Run(ctx, Input{
		Username: USERNAME,
		Email:    EMAIL,
		Role:     user.RoleAdministrador,
	})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrEmailAlreadyExists))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
}
