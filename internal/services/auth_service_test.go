package services

import (
	"context"
	"testing"
	"time"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	service AuthService
	ctx     context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.service = NewAuthService(repositories.NewUserRepo(mock), "test-secret", 3600)
	suite.ctx = context.Background()
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) userRow(id uuid.UUID, email, passwordHash string, isAdmin bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "full_name", "email", "password_hash", "phone", "address", "is_admin", "created_at", "updated_at"}).
		AddRow(id, "Test User", email, passwordHash, nil, nil, isAdmin, now, now)
}

func (suite *AuthServiceTestSuite) TestRegister_IssuesValidToken() {
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE email = \$1\)`).
		WithArgs("cashier@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "Test User", "cashier@example.com", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	token, err := suite.service.Register(suite.ctx, &RegisterInput{
		FullName: "Test User",
		Email:    "cashier@example.com",
		Password: "supersecret",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Bearer", token.TokenType)
	assert.Equal(suite.T(), 3600, token.ExpiresIn)

	claims, err := suite.service.ValidateToken(token.AccessToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), token.UserID, claims.UserID)
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE email = \$1\)`).
		WithArgs("cashier@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := suite.service.Register(suite.ctx, &RegisterInput{
		FullName: "Test User",
		Email:    "cashier@example.com",
		Password: "supersecret",
	})
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "email", validationErr.Field)
}

func (suite *AuthServiceTestSuite) TestRegister_ShortPassword() {
	_, err := suite.service.Register(suite.ctx, &RegisterInput{
		FullName: "Test User",
		Email:    "cashier@example.com",
		Password: "short",
	})
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "password", validationErr.Field)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	assert.NoError(suite.T(), err)

	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("cashier@example.com").
		WillReturnRows(suite.userRow(userID, "cashier@example.com", string(hash), false))

	token, err := suite.service.Login(suite.ctx, &LoginInput{
		Email:    "cashier@example.com",
		Password: "supersecret",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), userID.String(), token.UserID)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	assert.NoError(suite.T(), err)

	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("cashier@example.com").
		WillReturnRows(suite.userRow(userID, "cashier@example.com", string(hash), false))

	_, err = suite.service.Login(suite.ctx, &LoginInput{
		Email:    "cashier@example.com",
		Password: "wrong",
	})
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
}

// Changing the profile email must reject an address another account holds.
func (suite *AuthServiceTestSuite) TestUpdateProfile_EmailTaken() {
	userID := uuid.New()

	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnRows(suite.userRow(userID, "cashier@example.com", "hash", false))
	suite.mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE email = \$1\)`).
		WithArgs("manager@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := suite.service.UpdateProfile(suite.ctx, userID, &ProfileInput{
		FullName: "Test User",
		Email:    "manager@example.com",
	})
	var validationErr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "email", validationErr.Field)
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_KeepsEmailWithoutRecheck() {
	userID := uuid.New()

	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnRows(suite.userRow(userID, "cashier@example.com", "hash", false))
	suite.mock.ExpectExec(`UPDATE users`).
		WithArgs("Renamed User", "cashier@example.com", pgxmock.AnyArg(), pgxmock.AnyArg(), userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	user, err := suite.service.UpdateProfile(suite.ctx, userID, &ProfileInput{
		FullName: "Renamed User",
		Email:    "cashier@example.com",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Renamed User", user.FullName)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Garbage() {
	_, err := suite.service.ValidateToken("not.a.token")
	assert.Error(suite.T(), err)
}
