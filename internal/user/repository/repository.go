package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/asafonov/blog-backend/internal/common/db"
	"github.com/asafonov/blog-backend/internal/user/domain"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
)

type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	EnsureEmailIndex(ctx context.Context) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Create inserts the user and returns it with the storage-assigned id.
// A unique-index rejection on email maps to ErrEmailAlreadyInUse: the index
// is the backstop for concurrent registrations that pass the pre-check.
func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash, phone_number)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.PhoneNumber,
	)

	created := user
	err := row.Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			db.MeasureQueryDuration("create user", start)
			return domain.User{}, ErrEmailAlreadyInUse
		}
		return domain.User{}, db.HandleExecError(err, "create user", start)
	}

	db.MeasureQueryDuration("create user", start)
	return created, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, phone_number, created_at
		 FROM users WHERE email = $1`,
		email,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.PhoneNumber, &user.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by email", start); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, phone_number, created_at
		 FROM users WHERE id = $1`,
		string(id),
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.PhoneNumber, &user.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by id", start); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (r *PgRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
		email,
	)

	var exists bool
	err := row.Scan(&exists)
	if err := db.HandleQueryError(err, nil, "check user email exists", start); err != nil {
		return false, err
	}

	return exists, nil
}

// EnsureEmailIndex creates the unique email index if it is missing. It runs
// as a fire-and-forget task at startup; until it completes, concurrent
// registrations are guarded only by the pre-check.
func (r *PgRepository) EnsureEmailIndex(ctx context.Context) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)`,
	)
	return db.HandleExecError(err, "ensure user email index", start)
}
