package updatecompany

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

func TestUpdateCompanyService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createCompany(name string) company.Company {
	comp, err := suite.CompanyRepository.Create(
		context.Background(),
		company.CreateInput{Name: name, CreatedAt: time.Now().UTC()},
	)
	suite.Require().Nil(err)
	return comp
}

func (suite *testSuite) TestSuccess() {
	comp := suite.createCompany("acme")

	result, err := suite.Service.Run(context.Background(), Input{ID: comp.ID, Name: "acme-renamed"})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(comp.ID, result.Company.ID)
	assert.Equal("acme-renamed", result.Company.Name)
}

func (suite *testSuite) TestCompanyDoesNotExist() {
	_, err := suite.Service.Run(context.Background(), Input{ID: company.ID(111), Name: "acme"})

	suite.Require().True(errors.Is(err, company.ErrCompanyDoesNotExist))
}

func (suite *testSuite) TestNameAlreadyExists() {
	suite.createCompany("acme")
	other := suite.createCompany("other")

	_, err := suite.Service.Run(context.Background(), Input{ID: other.ID, Name: "acme"})

	suite.Require().True(errors.Is(err, company.ErrCompanyNameAlreadyExists))
}
