package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrDuplicateEmail = errors.New("email already registered")

// UserRecord is a console account row. PasswordHash is a bcrypt hash,
// never the plain password.
type UserRecord struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
}

// SQLUserRepository persists console accounts.
type SQLUserRepository struct {
	db *sql.DB
}

func NewSQLUserRepository(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

func (r *SQLUserRepository) Create(ctx context.Context, u UserRecord) (*UserRecord, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, email, password_hash, full_name)
		VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.FullName)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: insert: %w", err)
	}

	return &u, nil
}

func (r *SQLUserRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	query := `
		SELECT id, email, password_hash, full_name
		FROM users WHERE email = $1`

	var u UserRecord
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: query: %w", err)
	}

	return &u, nil
}
