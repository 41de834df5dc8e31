package services

import (
	"context"
	"testing"
	"time"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/models"
	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const productTestColumns = "id, name, barcode, image_url, description, price, discount, cost, stock, min_threshold, max_threshold, is_active, supplier_id, category_id, created_at, updated_at"

func productRow(id uuid.UUID, name string, stock int) *pgxmock.Rows {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "name", "barcode", "image_url", "description", "price", "discount", "cost", "stock", "min_threshold", "max_threshold", "is_active", "supplier_id", "category_id", "created_at", "updated_at"})
	rows.AddRow(id, name, nil, nil, nil, 9.99, 0.0, 5.0, stock, 5, 200, true, nil, nil, now, now)
	return rows
}

type InventoryServiceTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	service   InventoryService
	productID uuid.UUID
	ctx       context.Context
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	productRepo := repositories.NewProductRepo(mock)
	transactionRepo := repositories.NewTransactionRepo(mock)
	suite.service = NewInventoryService(productRepo, transactionRepo)
	suite.productID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *InventoryServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_Addition() {
	suite.mock.ExpectQuery(`SELECT ` + productTestColumns + ` FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(productRow(suite.productID, "Espresso Beans", 30))
	suite.mock.ExpectExec(`UPDATE products SET stock = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(50, suite.productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(pgxmock.AnyArg(), suite.productID, models.TransactionAddition, 20, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	transaction, err := suite.service.AdjustStock(suite.ctx, suite.mock, suite.productID, 20, models.TransactionAddition)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TransactionAddition, transaction.TransactionType)
	assert.Equal(suite.T(), 20, transaction.Quantity)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_Removal() {
	suite.mock.ExpectQuery(`SELECT ` + productTestColumns + ` FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(productRow(suite.productID, "Espresso Beans", 30))
	suite.mock.ExpectExec(`UPDATE products SET stock = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(10, suite.productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(pgxmock.AnyArg(), suite.productID, models.TransactionRemoval, 20, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	transaction, err := suite.service.AdjustStock(suite.ctx, suite.mock, suite.productID, -20, models.TransactionRemoval)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TransactionRemoval, transaction.TransactionType)
	assert.Equal(suite.T(), 20, transaction.Quantity)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_Sale() {
	suite.mock.ExpectQuery(`SELECT ` + productTestColumns + ` FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(productRow(suite.productID, "Espresso Beans", 100))
	suite.mock.ExpectExec(`UPDATE products SET stock = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(97, suite.productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(pgxmock.AnyArg(), suite.productID, models.TransactionSale, 3, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	transaction, err := suite.service.AdjustStock(suite.ctx, suite.mock, suite.productID, -3, models.TransactionSale)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, transaction.Quantity)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_ProductMissing() {
	suite.mock.ExpectQuery(`SELECT ` + productTestColumns + ` FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.service.AdjustStock(suite.ctx, suite.mock, suite.productID, -3, models.TransactionSale)
	assert.Error(suite.T(), err)
	var notFoundErr *common.NotFoundError
	assert.ErrorAs(suite.T(), err, &notFoundErr)
	assert.Equal(suite.T(), "product", notFoundErr.Resource)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_ZeroDelta() {
	_, err := suite.service.AdjustStock(suite.ctx, suite.mock, suite.productID, 0, models.TransactionAddition)
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_UnknownReason() {
	_, err := suite.service.AdjustStock(suite.ctx, suite.mock, suite.productID, 5, "restock")
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
}
