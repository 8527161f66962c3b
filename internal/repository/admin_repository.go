package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"vconnect/internal/models"
)

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin

	query := `SELECT * FROM admins WHERE email = $1`

	err := r.db.GetContext(ctx, &admin, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("администратор с email %s %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении администратора: %w", err)
	}

	return &admin, nil
}

func (r *adminRepository) VerifyPassword(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("неверный пароль: %w", ErrInvalidCredentials)
	}

	return admin, nil
}
