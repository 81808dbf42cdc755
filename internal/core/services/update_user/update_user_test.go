package updateuser

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
	USERNAME = "test-user"
	EMAIL    = c.Email("test@test.test")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)
}

func TestUpdateUserService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createCompany(name string) company.Company {
	comp, err := suite.UnitOfWork.Context.CompanyRepository.Create(
		context.Background(),
		company.CreateInput{Name: name, CreatedAt: NOW},
	)
	suite.Require().Nil(err)
	return comp
}

func (suite *testSuite) createUser(role user.Role, companyID c.Optional[company.ID]) user.User {
	u, err := suite.UnitOfWork.Context.UserRepository.Create(context.Background(), user.CreateUserInput{
		Username:               USERNAME,
		Email:                  EMAIL,
		Role:                   role,
		CompanyID:              companyID,
		SetPasswordToken:       c.NewOptional(user.SetPasswordToken("pending"), true),
		SetPasswordTokenExpiry: c.NewOptional(NOW.Add(time.Hour), true),
		CreatedAt:              NOW.Add(-time.Hour),
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestUpdateEmail() {
	u := suite.createUser(user.RoleAdministrador, c.NewOptional(company.ID(0), false))
	newEmail := c.Email("updated@test.test")

	result, err := suite.Service.Run(context.Background(), Input{
		ID:    u.ID,
		Email: c.NewOptional(newEmail, true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(newEmail, result.User.Email)
	assert.Equal(u.Role, result.User.Role)
	assert.Equal(NOW, result.User.UpdatedAt)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestUserDoesNotExist() {
	_, err := suite.Service.Run(context.Background(), Input{
		ID:    user.ID(111),
		Email: c.NewOptional(c.Email("updated@test.test"), true),
	})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestEmailAlreadyExists() {
	ctx := context.Background()
	u := suite.createUser(user.RoleAdministrador, c.NewOptional(company.ID(0), false))
	other, err := suite.UnitOfWork.Context.UserRepository.Create(ctx, user.CreateUserInput{
		Username:  "other-user",
		Email:     c.Email("other@test.test"),
		Role:      user.RoleAdministrador,
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{
		ID:    u.ID,
		Email: c.NewOptional(other.Email, true),
	})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrEmailAlreadyExists))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
}

func (suite *testSuite) TestAssignCompany() {
	u := suite.createUser(user.RoleAdministrador, c.NewOptional(company.ID(0), false))
	comp := suite.createCompany("acme")

	result, err := suite.Service.Run(context.Background(), Input{
		ID:        u.ID,
		CompanyID: c.NewOptional(comp.ID, true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(result.User.CompanyID.IsPresent)
	assert.Equal(comp.ID, result.User.CompanyID.Value)
}

func (suite *testSuite) TestAssignUnknownCompany() {
	u := suite.createUser(user.RoleAdministrador, c.NewOptional(company.ID(0), false))

	_, err := suite.Service.Run(context.Background(), Input{
		ID:        u.ID,
		CompanyID: c.NewOptional(company.ID(111), true),
	})

	assert := suite.Require()
	assert.True(errors.Is(err, company.ErrCompanyDoesNotExist))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestRemoveCompanyFromAdministrador() {
	comp := suite.createCompany("acme")
	u := suite.createUser(user.RoleAdministrador, c.NewOptional(comp.ID, true))

	result, err := suite.Service.Run(context.Background(), Input{
		ID:            u.ID,
		RemoveCompany: true,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.User.CompanyID.IsPresent)
}

func (suite *testSuite) TestRemoveCompanyForbiddenForCompanyRole() {
	comp := suite.createCompany("acme")
	u := suite.createUser(user.RoleUsuario, c.NewOptional(comp.ID, true))

	_, err := suite.Service.Run(context.Background(), Input{
		ID:            u.ID,
		RemoveCompany: true,
	})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrCompanyRequired))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestRoleChangeToCompanyRoleWithoutCompany() {
	u := suite.createUser(user.RoleAdministrador, c.NewOptional(company.ID(0), false))

	_, err := suite.Service.Run(context.Background(), Input{
		ID:   u.ID,
		Role: c.NewOptional(user.RoleUsuario, true),
	})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrCompanyRequired))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestRoleChangeWithCompanyAssignment() {
	u := suite.createUser(user.RoleAdministrador, c.NewOptional(company.ID(0), false))
	comp := suite.createCompany("acme")

	result, err := suite.Service.Run(context.Background(), Input{
		ID:        u.ID,
		Role:      c.NewOptional(user.RoleSuperusuario, true),
		CompanyID: c.NewOptional(comp.ID, true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.RoleSuperusuario, result.User.Role)
	assert.Equal(comp.ID, result.User.CompanyID.Value)
}

func (suite *testSuite) TestPasswordUpdateClearsSetPasswordToken() {
	u := suite.createUser(user.RoleAdministrador, c.NewOptional(company.ID(0), false))
	newPassword := user.RawPassword("forced-password")

	result, err := suite.Service.Run(context.Background(), Input{
		ID:          u.ID,
		NewPassword: c.NewOptional(newPassword, true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(result.User.PasswordHash.IsPresent)
	assert.True(suite.PasswordHasher.ValidatePassword(newPassword, result.User.PasswordHash.Value))
	assert.False(result.User.SetPasswordToken.IsPresent)
	assert.False(result.User.SetPasswordTokenExpiry.IsPresent)
}
