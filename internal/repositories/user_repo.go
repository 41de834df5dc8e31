package repositories

import (
	"context"
	"fmt"

	"github.com/waellejmi/pos-app/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	WithTx(q DBTX) UserRepository
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) WithTx(q DBTX) UserRepository {
	return &userRepo{db: q}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, full_name, email, password_hash, phone, address, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`, tableUsers)
	_, err := r.db.Exec(ctx, query, user.ID, user.FullName, user.Email, user.PasswordHash, user.Phone, user.Address, user.IsAdmin)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userColumns, tableUsers)
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Phone, &user.Address, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1`, userColumns, tableUsers)
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Phone, &user.Address, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET full_name = $1, email = $2, phone = $3, address = $4, updated_at = NOW()
		WHERE id = $5
	`, tableUsers)
	_, err := r.db.Exec(ctx, query, user.FullName, user.Email, user.Phone, user.Address, user.ID)
	return err
}

func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE email = $1)`, tableUsers)
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *userRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, tableUsers)
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}
