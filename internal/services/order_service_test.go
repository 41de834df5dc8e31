package services

import (
	"context"
	"testing"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	service   OrderService
	productID uuid.UUID
	paymentID uuid.UUID
	userID    uuid.UUID
	ctx       context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	productRepo := repositories.NewProductRepo(mock)
	transactionRepo := repositories.NewTransactionRepo(mock)
	inventory := NewInventoryService(productRepo, transactionRepo)

	suite.service = NewOrderService(
		mock,
		repositories.NewOrderRepo(mock),
		repositories.NewOrderItemRepo(mock),
		repositories.NewPaymentRepo(mock),
		repositories.NewCustomerRepo(mock),
		repositories.NewUserRepo(mock),
		productRepo,
		inventory,
		stubCache{},
	)
	suite.productID = uuid.New()
	suite.paymentID = uuid.New()
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) placeOrderInput(items []models.OrderItemInput) *models.PlaceOrderInput {
	return &models.PlaceOrderInput{
		OrderNumber: "ORD-1001",
		PaymentID:   suite.paymentID,
		UserID:      suite.userID,
		Status:      models.OrderStatusPending,
		Items:       items,
	}
}

func (suite *OrderServiceTestSuite) expectValidation(productChecks int) {
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM orders WHERE order_number = \$1\)`).
		WithArgs("ORD-1001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM payments WHERE id = \$1\)`).
		WithArgs(suite.paymentID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE id = \$1\)`).
		WithArgs(suite.userID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	for i := 0; i < productChecks; i++ {
		suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM products WHERE id = \$1\)`).
			WithArgs(suite.productID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	}
}

// The same product appearing on two lines must see the first line's decrement
// before applying the second: stock 100 with quantities 3 and 2 lands on 95,
// with one sale ledger row per line.
func (suite *OrderServiceTestSuite) TestPlaceOrder_RepeatedProductSequentialDecrement() {
	input := suite.placeOrderInput([]models.OrderItemInput{
		{ProductID: suite.productID, Quantity: 3, UnitPrice: 10},
		{ProductID: suite.productID, Quantity: 2, UnitPrice: 10},
	})

	suite.expectValidation(2)

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), "ORD-1001", suite.paymentID, pgxmock.AnyArg(), suite.userID, models.OrderStatusPending, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`DELETE FROM order_items WHERE order_id = \$1`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), suite.productID, 3, 10.0, 30.0,
			pgxmock.AnyArg(), pgxmock.AnyArg(), suite.productID, 2, 10.0, 20.0,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	suite.mock.ExpectQuery(`SELECT ` + productTestColumns + ` FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(productRow(suite.productID, "Espresso Beans", 100))
	suite.mock.ExpectExec(`UPDATE products SET stock = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(97, suite.productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(pgxmock.AnyArg(), suite.productID, models.TransactionSale, 3, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	suite.mock.ExpectQuery(`SELECT ` + productTestColumns + ` FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(productRow(suite.productID, "Espresso Beans", 97))
	suite.mock.ExpectExec(`UPDATE products SET stock = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(95, suite.productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(pgxmock.AnyArg(), suite.productID, models.TransactionSale, 2, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	suite.mock.ExpectCommit()

	order, err := suite.service.PlaceOrder(suite.ctx, input)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ORD-1001", order.OrderNumber)
	assert.Equal(suite.T(), models.OrderStatusPending, order.Status)
}

// A product that vanishes between validation and the item sync must roll the
// whole order back.
func (suite *OrderServiceTestSuite) TestPlaceOrder_ProductVanishedRollsBack() {
	input := suite.placeOrderInput([]models.OrderItemInput{
		{ProductID: suite.productID, Quantity: 1, UnitPrice: 10},
	})

	suite.expectValidation(1)

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), "ORD-1001", suite.paymentID, pgxmock.AnyArg(), suite.userID, models.OrderStatusPending, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`DELETE FROM order_items WHERE order_id = \$1`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), suite.productID, 1, 10.0, 10.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectQuery(`SELECT ` + productTestColumns + ` FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	_, err := suite.service.PlaceOrder(suite.ctx, input)
	var notFoundErr *common.NotFoundError
	assert.ErrorAs(suite.T(), err, &notFoundErr)
}

// Validation failures must be reported before any transaction is opened.
func (suite *OrderServiceTestSuite) TestPlaceOrder_DuplicateOrderNumber() {
	input := suite.placeOrderInput([]models.OrderItemInput{
		{ProductID: suite.productID, Quantity: 1, UnitPrice: 10},
	})

	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM orders WHERE order_number = \$1\)`).
		WithArgs("ORD-1001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := suite.service.PlaceOrder(suite.ctx, input)
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "order_number", validationErr.Field)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_NoItems() {
	input := suite.placeOrderInput(nil)

	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM orders WHERE order_number = \$1\)`).
		WithArgs("ORD-1001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM payments WHERE id = \$1\)`).
		WithArgs(suite.paymentID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE id = \$1\)`).
		WithArgs(suite.userID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := suite.service.PlaceOrder(suite.ctx, input)
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "items", validationErr.Field)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_InvalidQuantity() {
	input := suite.placeOrderInput([]models.OrderItemInput{
		{ProductID: suite.productID, Quantity: 0, UnitPrice: 10},
	})

	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM orders WHERE order_number = \$1\)`).
		WithArgs("ORD-1001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM payments WHERE id = \$1\)`).
		WithArgs(suite.paymentID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE id = \$1\)`).
		WithArgs(suite.userID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := suite.service.PlaceOrder(suite.ctx, input)
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_InvalidCompletedAt() {
	input := suite.placeOrderInput([]models.OrderItemInput{
		{ProductID: suite.productID, Quantity: 1, UnitPrice: 10},
	})
	badDate := "not-a-date"
	input.CompletedAt = &badDate

	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM orders WHERE order_number = \$1\)`).
		WithArgs("ORD-1001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := suite.service.PlaceOrder(suite.ctx, input)
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "completed_at", validationErr.Field)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_RemovesItemsAndOrder() {
	orderID := uuid.New()

	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM orders WHERE id = \$1\)`).
		WithArgs(orderID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`DELETE FROM order_items WHERE order_id = \$1`).
		WithArgs(orderID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs(orderID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.DeleteOrder(suite.ctx, orderID)
	assert.NoError(suite.T(), err)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_NotFound() {
	orderID := uuid.New()

	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM orders WHERE id = \$1\)`).
		WithArgs(orderID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	err := suite.service.DeleteOrder(suite.ctx, orderID)
	var notFoundErr *common.NotFoundError
	assert.ErrorAs(suite.T(), err, &notFoundErr)
}
