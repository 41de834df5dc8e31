package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo ProductRepository
	ctx  context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewProductRepo(mock)
	suite.ctx = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func (suite *ProductRepoTestSuite) productRows(products ...*models.Product) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "name", "barcode", "image_url", "description", "price", "discount", "cost", "stock", "min_threshold", "max_threshold", "is_active", "supplier_id", "category_id", "created_at", "updated_at"})
	for _, p := range products {
		rows.AddRow(p.ID, p.Name, p.Barcode, p.ImageURL, p.Description, p.Price, p.Discount, p.Cost, p.Stock, p.MinThreshold, p.MaxThreshold, p.IsActive, p.SupplierID, p.CategoryID, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func (suite *ProductRepoTestSuite) sampleProduct(name string, stock int) *models.Product {
	now := time.Now()
	return &models.Product{
		ID:           uuid.New(),
		Name:         name,
		Price:        4.5,
		Cost:         2.0,
		Stock:        stock,
		MinThreshold: 5,
		MaxThreshold: 100,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (suite *ProductRepoTestSuite) TestCreate() {
	product := suite.sampleProduct("Oat Milk", 40)

	suite.mock.ExpectExec(`INSERT INTO products`).
		WithArgs(product.ID, product.Name, product.Barcode, product.ImageURL, product.Description,
			product.Price, product.Discount, product.Cost, product.Stock, product.MinThreshold,
			product.MaxThreshold, product.IsActive, product.SupplierID, product.CategoryID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, product)
	assert.NoError(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestGetByID() {
	product := suite.sampleProduct("Oat Milk", 40)

	suite.mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
		WithArgs(product.ID).
		WillReturnRows(suite.productRows(product))

	got, err := suite.repo.GetByID(suite.ctx, product.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), product.Name, got.Name)
	assert.Equal(suite.T(), product.Stock, got.Stock)
}

func (suite *ProductRepoTestSuite) TestList_SearchAndActiveFilter() {
	product := suite.sampleProduct("Oat Milk", 40)
	active := true

	suite.mock.ExpectQuery(`SELECT .+ FROM products WHERE 1=1 AND name ILIKE \$1 AND is_active = \$2 ORDER BY updated_at DESC LIMIT \$3`).
		WithArgs("%oat%", true, 15).
		WillReturnRows(suite.productRows(product))

	products, err := suite.repo.List(suite.ctx, &models.ProductFilter{
		Search:   "oat",
		IsActive: &active,
		Limit:    15,
	})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
}

func (suite *ProductRepoTestSuite) TestList_NeedsRestocking() {
	product := suite.sampleProduct("Oat Milk", 6)
	needs := true

	suite.mock.ExpectQuery(`SELECT .+ FROM products WHERE 1=1 AND \(stock - min_threshold\) < 10 ORDER BY updated_at DESC LIMIT \$1`).
		WithArgs(15).
		WillReturnRows(suite.productRows(product))

	products, err := suite.repo.List(suite.ctx, &models.ProductFilter{
		NeedsRestocking: &needs,
		Limit:           15,
	})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
}

func (suite *ProductRepoTestSuite) TestUpdateStock() {
	id := uuid.New()

	suite.mock.ExpectExec(`UPDATE products SET stock = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(25, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateStock(suite.ctx, id, 25)
	assert.NoError(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestAssignCategory_AttachesAndDetaches() {
	categoryID := uuid.New()
	productIDs := []uuid.UUID{uuid.New(), uuid.New()}

	suite.mock.ExpectExec(`UPDATE products SET category_id = \$1, updated_at = NOW\(\) WHERE id = ANY\(\$2\)`).
		WithArgs(categoryID, productIDs).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	suite.mock.ExpectExec(`UPDATE products SET category_id = NULL, updated_at = NOW\(\) WHERE category_id = \$1 AND NOT \(id = ANY\(\$2\)\)`).
		WithArgs(categoryID, productIDs).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.AssignCategory(suite.ctx, categoryID, productIDs)
	assert.NoError(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestBarcodeExists() {
	barcode := "4006381333931"

	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM products WHERE barcode = \$1\)`).
		WithArgs(barcode).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := suite.repo.BarcodeExists(suite.ctx, barcode, nil)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}
