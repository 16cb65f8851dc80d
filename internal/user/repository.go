package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"littlelemon/internal/access"
	"littlelemon/internal/db"
	"littlelemon/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// Create inserts the user and its first group membership atomically.
	Create(ctx context.Context, u *User, group string) error
	// FindByID and FindByUsername return (nil, nil) when absent.
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)
	GetAccount(ctx context.Context, id uint) (*access.Account, error)

	ListGroupMembers(ctx context.Context, group string) ([]*User, error)
	AddToGroup(ctx context.Context, userID uint, group string) error
	RemoveFromGroup(ctx context.Context, userID uint, group string) error
}

const userColumns = `u.id, u.username, u.email, u.first_name, u.last_name, u.password, u.is_superuser`

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Password, &u.IsSuperuser)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User, group string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("username", u.Username),
	)

	err := r.db.QueryRowContext(ctx, `
		WITH inserted AS (
			INSERT INTO users (username, email, first_name, last_name, password)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		)
		INSERT INTO user_groups (user_id, group_name)
		SELECT id, $6 FROM inserted
		RETURNING user_id
	`, u.Username, u.Email, u.FirstName, u.LastName, u.Password, group).Scan(&u.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Info("username already registered")
			return ErrUsernameTaken
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) findOne(ctx context.Context, where string, arg any) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	return r.findOne(ctx, `u.id = $1`, id)
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `u.username = $1`, username)
}

func (r *repository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*User, error) {
	out := make(map[uint]*User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]int64, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, int64(id))
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.id = ANY($1)`, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, rows.Err()
}

func (r *repository) GetAccount(ctx context.Context, id uint) (*access.Account, error) {
	var (
		acc    access.Account
		groups pq.StringArray
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.is_superuser,
		       COALESCE(array_agg(g.group_name) FILTER (WHERE g.group_name IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_groups g ON g.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.id
	`, id).Scan(&acc.ID, &acc.Username, &acc.IsSuperuser, &groups)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	acc.Groups = []string(groups)
	return &acc, nil
}
