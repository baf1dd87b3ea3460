package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password, is_verified, verification_code, code_expires_at,
	role, mobile_number, dob, address, profile_picture, is_guest,
	reset_password_token, reset_password_expires, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsVerified,
		&u.VerificationCode, &u.CodeExpiresAt, &u.Role, &u.MobileNumber,
		&u.DOB, &u.Address, &u.ProfilePicture, &u.IsGuest,
		&u.ResetPasswordToken, &u.ResetPasswordExpires,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, is_verified, verification_code, code_expires_at,
			role, mobile_number, dob, address, profile_picture, is_guest)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.IsVerified, u.VerificationCode, u.CodeExpiresAt,
		u.Role, u.MobileNumber, u.DOB, u.Address, u.ProfilePicture, u.IsGuest)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password = $3, is_verified = $4,
			verification_code = $5, code_expires_at = $6, role = $7,
			mobile_number = $8, dob = $9, address = $10, profile_picture = $11,
			is_guest = $12, reset_password_token = $13, reset_password_expires = $14,
			updated_at = $15
		WHERE id = $16
	`, u.Name, u.Email, u.Password, u.IsVerified,
		u.VerificationCode, u.CodeExpiresAt, u.Role,
		u.MobileNumber, u.DOB, u.Address, u.ProfilePicture,
		u.IsGuest, u.ResetPasswordToken, u.ResetPasswordExpires,
		u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
