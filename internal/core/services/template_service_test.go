package services_test

import (
	"context"
	"testing"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	portssvc "github.com/hendrawijaya/pembukuan_app/internal/core/ports/services"
	"github.com/hendrawijaya/pembukuan_app/internal/core/services"
	"github.com/hendrawijaya/pembukuan_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TemplateServiceTestSuite struct {
	suite.Suite
	mockTemplateRepo *MockTemplateRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.TemplateSvcFacade

	cashAccount   domain.Account
	salesAccount  domain.Account
	headerAccount domain.Account
}

func (suite *TemplateServiceTestSuite) SetupTest() {
	suite.mockTemplateRepo = new(MockTemplateRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTemplateService(suite.mockTemplateRepo, suite.mockAccountRepo)

	suite.cashAccount = domain.Account{
		AccountID: uuid.NewString(), AccountCode: "1.1.01", AccountName: "Kas",
		AccountType: domain.Asset, NormalBalance: domain.NormalDebit, IsActive: true,
	}
	suite.salesAccount = domain.Account{
		AccountID: uuid.NewString(), AccountCode: "4.1.01", AccountName: "Pendapatan",
		AccountType: domain.Revenue, NormalBalance: domain.NormalCredit, IsActive: true,
	}
	suite.headerAccount = domain.Account{
		AccountID: uuid.NewString(), AccountCode: "1.1", AccountName: "Aktiva Lancar",
		AccountType: domain.Asset, NormalBalance: domain.NormalDebit, IsHeader: true, IsActive: true,
	}
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_Success() {
	ctx := context.Background()
	cashID := suite.cashAccount.AccountID
	salesID := suite.salesAccount.AccountID
	req := dto.CreateTemplateRequest{
		Name:         "Penjualan Tunai",
		TemplateType: domain.TemplateSimple,
		Lines: []dto.CreateTemplateLineRequest{
			{AccountID: &cashID, Position: domain.Debit, Formula: "amount"},
			{AccountID: &salesID, Position: domain.Credit, Formula: ""},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{cashID, salesID}).Return(map[string]domain.Account{
		cashID:  suite.cashAccount,
		salesID: suite.salesAccount,
	}, nil).Once()
	suite.mockTemplateRepo.On("SaveTemplate", ctx, mock.AnythingOfType("domain.JournalTemplate")).Return(nil).Once()

	template, err := suite.service.CreateTemplate(ctx, req, "siti")

	suite.Require().NoError(err)
	suite.True(template.IsActive)
	suite.Require().Len(template.Lines, 2)
	suite.Equal(1, template.Lines[0].LineOrder)
	suite.Equal(2, template.Lines[1].LineOrder)
	suite.Equal(template.TemplateID, template.Lines[0].TemplateID)
	suite.NotEmpty(template.Lines[0].LineID)
	suite.Equal("siti", template.CreatedBy)
	suite.mockTemplateRepo.AssertExpectations(suite.T())
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_BadFormulaRejected() {
	ctx := context.Background()
	cashID := suite.cashAccount.AccountID
	salesID := suite.salesAccount.AccountID
	req := dto.CreateTemplateRequest{
		Name:         "Rusak",
		TemplateType: domain.TemplateSimple,
		Lines: []dto.CreateTemplateLineRequest{
			{AccountID: &cashID, Position: domain.Debit, Formula: "amount *"},
			{AccountID: &salesID, Position: domain.Credit, Formula: "amount"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(map[string]domain.Account{
		cashID:  suite.cashAccount,
		salesID: suite.salesAccount,
	}, nil).Once()

	_, err := suite.service.CreateTemplate(ctx, req, "siti")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTemplateRepo.AssertNotCalled(suite.T(), "SaveTemplate", mock.Anything, mock.Anything)
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_HeaderAccountRejected() {
	ctx := context.Background()
	headerID := suite.headerAccount.AccountID
	salesID := suite.salesAccount.AccountID
	req := dto.CreateTemplateRequest{
		Name:         "Salah Akun",
		TemplateType: domain.TemplateSimple,
		Lines: []dto.CreateTemplateLineRequest{
			{AccountID: &headerID, Position: domain.Debit, Formula: "amount"},
			{AccountID: &salesID, Position: domain.Credit, Formula: "amount"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(map[string]domain.Account{
		headerID: suite.headerAccount,
		salesID:  suite.salesAccount,
	}, nil).Once()

	_, err := suite.service.CreateTemplate(ctx, req, "siti")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_DynamicLinesNeedNoAccount() {
	ctx := context.Background()
	salesID := suite.salesAccount.AccountID
	req := dto.CreateTemplateRequest{
		Name:         "Beban Dinamis",
		TemplateType: domain.TemplateSimple,
		Lines: []dto.CreateTemplateLineRequest{
			{AccountHint: "Akun beban", Position: domain.Debit, Formula: "amount"},
			{AccountID: &salesID, Position: domain.Credit, Formula: "amount"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{salesID}).Return(map[string]domain.Account{
		salesID: suite.salesAccount,
	}, nil).Once()
	suite.mockTemplateRepo.On("SaveTemplate", ctx, mock.AnythingOfType("domain.JournalTemplate")).Return(nil).Once()

	template, err := suite.service.CreateTemplate(ctx, req, "siti")

	suite.Require().NoError(err)
	suite.Nil(template.Lines[0].AccountID)
	suite.True(template.Lines[0].IsDynamic())
}

func TestTemplateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TemplateServiceTestSuite))
}
