package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"gameforge-server/internal/models"
)

const (
	createUserQuery = `
        INSERT INTO users (id, username, email, password_hash)
        VALUES ($1, $2, $3, $4)
    `
	getUserByIDQuery       = `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`
	getUserByUsernameQuery = `SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`
)

type pgUserRepository struct {
	db     DBTX
	logger *zap.Logger
}

// Compile-time check
var _ UserRepository = (*pgUserRepository)(nil)

// NewPgUserRepository creates a PostgreSQL-backed UserRepository.
func NewPgUserRepository(db DBTX, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	log := r.logger.With(zap.String("username", user.Username))
	log.Debug("Creating user record")

	_, err := r.db.Exec(ctx, createUserQuery, user.ID, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			switch pgErr.ConstraintName {
			case "users_email_key":
				log.Warn("Email already exists")
				return models.ErrEmailAlreadyExists
			default:
				log.Warn("Username already exists")
				return models.ErrUserAlreadyExists
			}
		}
		log.Error("Failed to create user record", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("User record created", zap.String("userID", user.ID.String()))
	return nil
}

func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := pgxscan.Get(ctx, r.db, &user, getUserByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by ID", zap.String("userID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

func (r *pgUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := pgxscan.Get(ctx, r.db, &user, getUserByUsernameQuery, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by username", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}
