package deletecompany

import (
	"context"
	"errors"
	"testing"
	"time"
	"useradmin/internal/core/domain/company"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/services"

	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	CompanyRepository *company.FakeRepository
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.CompanyRepository = company.NewFakeRepository()
	suite.Service = New(suite.Logger, suite.CompanyRepository)
}

func TestDeleteCompanyService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	comp, err := suite.CompanyRepository.Create(
		ctx,
		company.CreateInput{Name: "acme", CreatedAt: time.Now().UTC()},
	)
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{ID: comp.ID})

	assert := suite.Require()
	assert.Nil(err)
	_, err = suite.CompanyRepository.GetByID(ctx, comp.ID)
	assert.True(errors.Is(err, company.ErrCompanyDoesNotExist))
}

func (suite *testSuite) TestCompanyDoesNotExist() {
	_, err := suite.Service.Run(context.Background(), Input{ID: company.ID(111)})

	suite.Require().True(errors.Is(err, company.ErrCompanyDoesNotExist))
}
