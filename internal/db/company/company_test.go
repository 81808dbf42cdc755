package company

import (
	"context"
	"testing"
	"time"
	c "useradmin/internal/core/domain/common"
	"useradmin/internal/core/domain/company"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/db"
	dbuser "useradmin/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxCompanyRepository
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

func TestPgxCompanyRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreateAndGet() {
	created, err := suite.repo.Create(context.Background(), company.CreateInput{Name: "Acme", CreatedAt: NOW})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("Acme", created.Name)
	assert.True(NOW.Equal(created.CreatedAt))

	got, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.Equal(created.ID, got.ID)

	exists, err := suite.repo.Exists(context.Background(), created.ID)
	assert.Nil(err)
	assert.True(exists)
}

func (suite *testSuite) TestNameAlreadyExistsError() {
	_, err := suite.repo.Create(context.Background(), company.CreateInput{Name: "Acme", CreatedAt: NOW})
	suite.Require().Nil(err)

	_, err = suite.repo.Create(context.Background(), company.CreateInput{Name: "Acme", CreatedAt: NOW})
	suite.Require().ErrorIs(err, company.ErrCompanyNameAlreadyExists)
}

func (suite *testSuite) TestListOrderedByName() {
	for _, name := range []string{"Zeta", "Acme", "Mid"} {
		_, err := suite.repo.Create(context.Background(), company.CreateInput{Name: name, CreatedAt: NOW})
		suite.Require().Nil(err)
	}

	companies, err := suite.repo.List(context.Background())

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(companies, 3)
	assert.Equal("Acme", companies[0].Name)
	assert.Equal("Mid", companies[1].Name)
	assert.Equal("Zeta", companies[2].Name)
}

func (suite *testSuite) TestUpdate() {
	created, err := suite.repo.Create(context.Background(), company.CreateInput{Name: "Acme", CreatedAt: NOW})
	suite.Require().Nil(err)

	updated, err := suite.repo.Update(context.Background(), company.UpdateInput{ID: created.ID, Name: "Acme Corp"})
	suite.Require().Nil(err)
	suite.Require().Equal("Acme Corp", updated.Name)

	_, err = suite.repo.Update(context.Background(), company.UpdateInput{ID: created.ID + 1000, Name: "Nope"})
	suite.Require().ErrorIs(err, company.ErrCompanyDoesNotExist)
}

func (suite *testSuite) TestDeleteDetachesUsers() {
	created, err := suite.repo.Create(context.Background(), company.CreateInput{Name: "Acme", CreatedAt: NOW})
	suite.Require().Nil(err)

	userRepo := dbuser.NewPgxRepository(suite.pool)
	u, err := userRepo.Create(context.Background(), user.CreateUserInput{
		Username:  "test-user",
		Email:     c.Email("test@test.test"),
		Role:      user.RoleUsuario,
		CompanyID: c.NewOptional(created.ID, true),
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)

	err = suite.repo.Delete(context.Background(), created.ID)
	suite.Require().Nil(err)

	// Validate fails for a role that requires a company, so read raw.
	var companyID *int64
	err = suite.pool.QueryRow(context.Background(), `SELECT company_id FROM "user" WHERE id = $1`, int64(u.ID)).Scan(&companyID)
	suite.Require().Nil(err)
	suite.Require().Nil(companyID)
}
