package user

import (
	"context"
	"testing"
	"time"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	USERNAME           = "test-user"
	EMAIL              = "test@test.test"
	SET_PASSWORD_TOKEN = "test-set-password-token"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(username, email string) user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Username:               username,
		Email:                  c.Email(email),
		Role:                   user.RoleAdministrador,
		SetPasswordToken:       c.NewOptional(user.SetPasswordToken(SET_PASSWORD_TOKEN+"-"+username), true),
		SetPasswordTokenExpiry: c.NewOptional(NOW.Add(24*time.Hour), true),
		CreatedAt:              NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestCreateSuccess() {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Username:               USERNAME,
		Email:                  c.Email(EMAIL),
		PrivacyPolicyAccepted:  true,
		Role:                   user.RoleAdministrador,
		SetPasswordToken:       c.NewOptional(user.SetPasswordToken(SET_PASSWORD_TOKEN), true),
		SetPasswordTokenExpiry: c.NewOptional(NOW.Add(24*time.Hour), true),
		CreatedAt:              NOW,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(USERNAME, u.Username)
	assert.Equal(c.Email(EMAIL), u.Email)
	assert.True(u.PrivacyPolicyAccepted)
	assert.Equal(user.RoleAdministrador, u.Role)
	assert.False(u.PasswordHash.IsPresent)
	assert.False(u.IsEmailVerified)
	assert.Equal(user.SetPasswordToken(SET_PASSWORD_TOKEN), u.SetPasswordToken.Value)
	assert.True(NOW.Equal(u.CreatedAt))
}

func (suite *testSuite) TestUsernameAlreadyExistsError() {
	suite.createUser(USERNAME, EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Username:  USERNAME,
		Email:     c.Email("other@test.test"),
		Role:      user.RoleAdministrador,
		CreatedAt: NOW,
	})

	suite.Require().ErrorIs(err, user.ErrUsernameAlreadyExists)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	suite.createUser(USERNAME, EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Username:  "other-user",
		Email:     c.Email(EMAIL),
		Role:      user.RoleAdministrador,
		CreatedAt: NOW,
	})

	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (suite *testSuite) TestGetByUsernameOrEmail() {
	created := suite.createUser(USERNAME, EMAIL)

	byUsername, err := suite.repo.GetByUsernameOrEmail(context.Background(), USERNAME)
	suite.Require().Nil(err)
	suite.Require().Equal(created.ID, byUsername.ID)

	byEmail, err := suite.repo.GetByUsernameOrEmail(context.Background(), EMAIL)
	suite.Require().Nil(err)
	suite.Require().Equal(created.ID, byEmail.ID)

	_, err = suite.repo.GetByUsernameOrEmail(context.Background(), "unknown")
	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestUpdateOnlyRequestedFields() {
	created := suite.createUser(USERNAME, EMAIL)

	updated, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:            created.ID,
		DoEmailUpdate: true,
		Email:         c.Email("updated@test.test"),
		At:            NOW.Add(time.Hour),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(c.Email("updated@test.test"), updated.Email)
	assert.Equal(created.Username, updated.Username)
	assert.Equal(created.Role, updated.Role)
	assert.Equal(created.SetPasswordToken, updated.SetPasswordToken)
	assert.True(NOW.Add(time.Hour).Equal(updated.UpdatedAt))
}

func (suite *testSuite) TestUpdatePasswordClearsSetPasswordToken() {
	created := suite.createUser(USERNAME, EMAIL)

	updated, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:                   created.ID,
		DoPasswordHashUpdate: true,
		PasswordHash:         user.PasswordHash("new-hash"),
		At:                   NOW.Add(time.Hour),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordHash("new-hash"), updated.PasswordHash.Value)
	assert.False(updated.SetPasswordToken.IsPresent)
	assert.False(updated.SetPasswordTokenExpiry.IsPresent)
}

func (suite *testSuite) TestConsumeSetPasswordTokenSucceedsOnce() {
	created := suite.createUser(USERNAME, EMAIL)

	consumed, err := suite.repo.ConsumeSetPasswordToken(context.Background(), user.ConsumeSetPasswordTokenInput{
		Token:        created.SetPasswordToken.Value,
		PasswordHash: user.PasswordHash("hash"),
		At:           NOW.Add(time.Minute),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(consumed.IsEmailVerified)
	assert.Equal(user.PasswordHash("hash"), consumed.PasswordHash.Value)
	assert.False(consumed.SetPasswordToken.IsPresent)

	_, err = suite.repo.ConsumeSetPasswordToken(context.Background(), user.ConsumeSetPasswordTokenInput{
		Token:        created.SetPasswordToken.Value,
		PasswordHash: user.PasswordHash("other-hash"),
		At:           NOW.Add(2 * time.Minute),
	})
	assert.ErrorIs(err, user.ErrTokenDoesNotExist)
}

func (suite *testSuite) TestClearSetPasswordToken() {
	created := suite.createUser(USERNAME, EMAIL)

	err := suite.repo.ClearSetPasswordToken(context.Background(), created.SetPasswordToken.Value, NOW.Add(time.Minute))
	suite.Require().Nil(err)

	u, err := suite.repo.GetByID(context.Background(), created.ID)
	suite.Require().Nil(err)
	suite.Require().False(u.SetPasswordToken.IsPresent)
	suite.Require().False(u.IsEmailVerified)

	err = suite.repo.ClearSetPasswordToken(context.Background(), created.SetPasswordToken.Value, NOW.Add(time.Minute))
	suite.Require().ErrorIs(err, user.ErrTokenDoesNotExist)
}

func (suite *testSuite) TestResetPasswordTokenLifecycle() {
	created := suite.createUser(USERNAME, EMAIL)

	withToken, err := suite.repo.SetResetPasswordToken(context.Background(), user.SetResetPasswordTokenInput{
		ID:        created.ID,
		Token:     user.ResetPasswordToken("reset-token"),
		ExpiresAt: NOW.Add(time.Hour),
		At:        NOW,
	})
	suite.Require().Nil(err)
	suite.Require().Equal(user.ResetPasswordToken("reset-token"), withToken.ResetPasswordToken.Value)

	found, err := suite.repo.GetByResetPasswordToken(context.Background(), "reset-token")
	suite.Require().Nil(err)
	suite.Require().Equal(created.ID, found.ID)

	consumed, err := suite.repo.ConsumeResetPasswordToken(context.Background(), user.ConsumeResetPasswordTokenInput{
		Token:        "reset-token",
		PasswordHash: user.PasswordHash("hash"),
		At:           NOW.Add(time.Minute),
	})
	suite.Require().Nil(err)
	suite.Require().False(consumed.ResetPasswordToken.IsPresent)
	suite.Require().False(consumed.IsEmailVerified)

	_, err = suite.repo.ConsumeResetPasswordToken(context.Background(), user.ConsumeResetPasswordTokenInput{
		Token:        "reset-token",
		PasswordHash: user.PasswordHash("other-hash"),
		At:           NOW.Add(time.Minute),
	})
	suite.Require().ErrorIs(err, user.ErrTokenDoesNotExist)
}

func (suite *testSuite) TestDelete() {
	created := suite.createUser(USERNAME, EMAIL)

	err := suite.repo.Delete(context.Background(), created.ID)
	suite.Require().Nil(err)

	_, err = suite.repo.GetByID(context.Background(), created.ID)
	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)

	err = suite.repo.Delete(context.Background(), created.ID)
	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}
