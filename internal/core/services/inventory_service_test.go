package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/core/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	mockAuditRepo     *MockAuditRepository
	service           portssvc.InventorySvcFacade
	ctx               context.Context
	tenantID          string
	userID            string
}

func (s *InventoryServiceTestSuite) SetupTest() {
	s.mockInventoryRepo = new(MockInventoryRepository)
	s.mockAuditRepo = new(MockAuditRepository)
	s.service = services.NewInventoryService(s.mockInventoryRepo, s.mockAuditRepo, decimal.NewFromInt(100))
	s.ctx = context.Background()
	s.tenantID = "tenant-1"
	s.userID = "user-1"
	s.mockAuditRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

func (s *InventoryServiceTestSuite) item(name string, stock, avgCost string) *domain.InventoryItem {
	return &domain.InventoryItem{
		ItemID:       "item-1",
		TenantID:     s.tenantID,
		Name:         name,
		Unit:         "kg",
		CurrentStock: decimal.RequireFromString(stock),
		AverageCost:  decimal.RequireFromString(avgCost),
	}
}

func (s *InventoryServiceTestSuite) TestCreateItem_Success() {
	s.mockInventoryRepo.On("FindItemByName", s.ctx, s.tenantID, "Layer Feed").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockInventoryRepo.On("SaveItem", s.ctx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.Name == "Layer Feed" && item.CurrentStock.IsZero() && item.AverageCost.IsZero()
	})).Return(nil).Once()

	item, err := s.service.CreateItem(s.ctx, s.tenantID, dto.CreateItemRequest{Name: "Layer Feed", Unit: "kg"}, s.userID)

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), item.ItemID)
	s.mockInventoryRepo.AssertExpectations(s.T())
}

func (s *InventoryServiceTestSuite) TestCreateItem_DuplicateName() {
	s.mockInventoryRepo.On("FindItemByName", s.ctx, s.tenantID, "Layer Feed").
		Return(s.item("Layer Feed", "0", "0"), nil).Once()

	item, err := s.service.CreateItem(s.ctx, s.tenantID, dto.CreateItemRequest{Name: "Layer Feed", Unit: "kg"}, s.userID)

	assert.Nil(s.T(), item)
	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicate)
	s.mockInventoryRepo.AssertNotCalled(s.T(), "SaveItem", mock.Anything, mock.Anything)
}

func (s *InventoryServiceTestSuite) TestReceiveStock_MovesAverage() {
	s.mockInventoryRepo.On("MutateItem", s.ctx, s.tenantID, "item-1").
		Return(s.item("Maize", "100", "2"), nil).Once()

	item, err := s.service.ReceiveStock(s.ctx, s.tenantID, dto.StockReceiptRequest{
		ItemID:   "item-1",
		Quantity: decimal.NewFromInt(50),
		UnitCost: decimal.NewFromInt(3),
	}, s.userID)

	assert.NoError(s.T(), err)
	// (100*2 + 50*3) / 150, rounded to quantity precision.
	assert.True(s.T(), item.AverageCost.Equal(decimal.RequireFromString("2.333")), item.AverageCost.String())
	assert.True(s.T(), item.CurrentStock.Equal(decimal.NewFromInt(150)))
	s.mockInventoryRepo.AssertExpectations(s.T())
}

func (s *InventoryServiceTestSuite) TestReceiveStock_FirstReceipt() {
	s.mockInventoryRepo.On("MutateItem", s.ctx, s.tenantID, "item-1").
		Return(s.item("Maize", "0", "0"), nil).Once()

	item, err := s.service.ReceiveStock(s.ctx, s.tenantID, dto.StockReceiptRequest{
		ItemID:   "item-1",
		Quantity: decimal.NewFromInt(40),
		UnitCost: decimal.RequireFromString("2.75"),
	}, s.userID)

	assert.NoError(s.T(), err)
	assert.True(s.T(), item.AverageCost.Equal(decimal.RequireFromString("2.75")))
	assert.True(s.T(), item.CurrentStock.Equal(decimal.NewFromInt(40)))
}

func (s *InventoryServiceTestSuite) TestReceiveStock_RejectsNonPositiveQuantity() {
	item, err := s.service.ReceiveStock(s.ctx, s.tenantID, dto.StockReceiptRequest{
		ItemID:   "item-1",
		Quantity: decimal.Zero,
		UnitCost: decimal.NewFromInt(3),
	}, s.userID)

	assert.Nil(s.T(), item)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockInventoryRepo.AssertNotCalled(s.T(), "MutateItem", mock.Anything, mock.Anything, mock.Anything)
}

func (s *InventoryServiceTestSuite) TestReceiveStock_RejectsNegativeCost() {
	item, err := s.service.ReceiveStock(s.ctx, s.tenantID, dto.StockReceiptRequest{
		ItemID:   "item-1",
		Quantity: decimal.NewFromInt(10),
		UnitCost: decimal.NewFromInt(-1),
	}, s.userID)

	assert.Nil(s.T(), item)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *InventoryServiceTestSuite) TestConsumeStock_Insufficient() {
	s.mockInventoryRepo.On("MutateItem", s.ctx, s.tenantID, "item-1").
		Return(s.item("Maize", "10", "2"), nil).Once()

	item, err := s.service.ConsumeStock(s.ctx, s.tenantID, dto.StockConsumptionRequest{
		ItemID:   "item-1",
		Quantity: decimal.NewFromInt(20),
	}, s.userID)

	assert.Nil(s.T(), item)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *InventoryServiceTestSuite) TestConsumeStock_EggWithinTolerance() {
	s.mockInventoryRepo.On("MutateItem", s.ctx, s.tenantID, "item-1").
		Return(s.item("Table Egg", "50", "0"), nil).Once()

	item, err := s.service.ConsumeStock(s.ctx, s.tenantID, dto.StockConsumptionRequest{
		ItemID:   "item-1",
		Quantity: decimal.NewFromInt(120),
	}, s.userID)

	assert.NoError(s.T(), err)
	assert.True(s.T(), item.CurrentStock.Equal(decimal.NewFromInt(-70)))
}

func (s *InventoryServiceTestSuite) TestConsumeStock_EggBeyondTolerance() {
	s.mockInventoryRepo.On("MutateItem", s.ctx, s.tenantID, "item-1").
		Return(s.item("Table Egg", "50", "0"), nil).Once()

	item, err := s.service.ConsumeStock(s.ctx, s.tenantID, dto.StockConsumptionRequest{
		ItemID:   "item-1",
		Quantity: decimal.NewFromInt(200),
	}, s.userID)

	assert.Nil(s.T(), item)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *InventoryServiceTestSuite) TestConsumeStock_NonEggHasNoTolerance() {
	s.mockInventoryRepo.On("MutateItem", s.ctx, s.tenantID, "item-1").
		Return(s.item("Maize", "50", "2"), nil).Once()

	item, err := s.service.ConsumeStock(s.ctx, s.tenantID, dto.StockConsumptionRequest{
		ItemID:   "item-1",
		Quantity: decimal.RequireFromString("50.001"),
	}, s.userID)

	assert.Nil(s.T(), item)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *InventoryServiceTestSuite) TestReturnStock_PreservesAverage() {
	s.mockInventoryRepo.On("MutateItem", s.ctx, s.tenantID, "item-1").
		Return(s.item("Maize", "10", "2.5"), nil).Once()

	item, err := s.service.ReturnStock(s.ctx, s.tenantID, dto.StockReturnRequest{
		ItemID:   "item-1",
		Quantity: decimal.NewFromInt(5),
	}, s.userID)

	assert.NoError(s.T(), err)
	assert.True(s.T(), item.CurrentStock.Equal(decimal.NewFromInt(15)))
	assert.True(s.T(), item.AverageCost.Equal(decimal.RequireFromString("2.5")))
}

func (s *InventoryServiceTestSuite) TestListItems_FiltersByCategory() {
	feed := "Feed"
	s.mockInventoryRepo.On("ListItems", s.ctx, s.tenantID, 100, 0).
		Return([]domain.InventoryItem{
			{ItemID: "a", Category: "Feed"},
			{ItemID: "b", Category: "Medicine"},
			{ItemID: "c", Category: "Feed"},
		}, nil).Once()

	items, err := s.service.ListItems(s.ctx, s.tenantID, dto.ListItemsParams{Category: &feed, Limit: 100})

	assert.NoError(s.T(), err)
	assert.Len(s.T(), items, 2)
	for _, item := range items {
		assert.Equal(s.T(), "Feed", item.Category)
	}
}
