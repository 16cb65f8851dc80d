package user

import (
	"context"

	"littlelemon/internal/logger"

	"go.uber.org/zap"
)

func (r *repository) ListGroupMembers(ctx context.Context, group string) ([]*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListGroupMembers"),
		zap.String("group", group),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN user_groups g ON g.user_id = u.id
		WHERE g.group_name = $1
		ORDER BY u.id ASC
	`, group)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *repository) AddToGroup(ctx context.Context, userID uint, group string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_groups (user_id, group_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, group_name) DO NOTHING
	`, userID, group)
	if err != nil {
		logger.FromCtx(ctx).Error("add to group failed",
			zap.String("layer", "repository"),
			zap.Uint("target_user_id", userID),
			zap.String("group", group),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) RemoveFromGroup(ctx context.Context, userID uint, group string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_groups WHERE user_id = $1 AND group_name = $2`, userID, group)
	return err
}
