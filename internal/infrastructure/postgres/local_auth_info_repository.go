package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
)

type LocalAuthInfoRepository struct {
	db DBTX
}

var _ repository.LocalAuthInfoRepository = (*LocalAuthInfoRepository)(nil)

func NewLocalAuthInfoRepository(db DBTX) *LocalAuthInfoRepository {
	return &LocalAuthInfoRepository{db: db}
}

const localAuthInfoColumns = `id, user_id, auth_type, hashed_password, password_expired_at, created_at, updated_at`

func (r *LocalAuthInfoRepository) Save(ctx context.Context, a entity.LocalAuthInfo) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO local_auth_infos (`+localAuthInfoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET hashed_password = EXCLUDED.hashed_password,
		    password_expired_at = EXCLUDED.password_expired_at,
		    updated_at = EXCLUDED.updated_at
	`, a.ID(), a.UserID(), a.AuthType().String(), a.HashedPassword().Value(),
		a.PasswordExpiredAt(), a.CreatedAt(), a.UpdatedAt())
	if err != nil {
		if name, ok := uniqueViolation(err); ok && name == constraintLocalAuthInfoUser {
			return &repository.AuthInfoAlreadyExistsError{UserID: a.UserID()}
		}
		return fmt.Errorf("save local auth info %s: %w", a.ID(), err)
	}
	return nil
}

func (r *LocalAuthInfoRepository) Get(ctx context.Context, id uuid.UUID) (entity.LocalAuthInfo, error) {
	row := r.db.QueryRow(ctx, `SELECT `+localAuthInfoColumns+` FROM local_auth_infos WHERE id = $1`, id)

	a, err := scanLocalAuthInfo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.LocalAuthInfo{}, &repository.EntityNotFoundError{Repository: "local_auth_infos", ID: id}
	}
	if err != nil {
		return entity.LocalAuthInfo{}, fmt.Errorf("get local auth info %s: %w", id, err)
	}
	return a, nil
}

func (r *LocalAuthInfoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM local_auth_infos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete local auth info %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &repository.EntityNotFoundError{Repository: "local_auth_infos", ID: id}
	}
	return nil
}

func (r *LocalAuthInfoRepository) GetUserAuthInfo(ctx context.Context, userID uuid.UUID) (entity.LocalAuthInfo, error) {
	row := r.db.QueryRow(ctx, `SELECT `+localAuthInfoColumns+` FROM local_auth_infos WHERE user_id = $1`, userID)

	a, err := scanLocalAuthInfo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.LocalAuthInfo{}, &repository.LocalAuthInfoNotFoundError{UserID: userID}
	}
	if err != nil {
		return entity.LocalAuthInfo{}, fmt.Errorf("get local auth info for user %s: %w", userID, err)
	}
	return a, nil
}

func scanLocalAuthInfo(row pgx.Row) (entity.LocalAuthInfo, error) {
	var (
		s        entity.LocalAuthInfoSnapshot
		authType string
	)
	if err := row.Scan(&s.ID, &s.UserID, &authType, &s.HashedPassword, &s.PasswordExpiredAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return entity.LocalAuthInfo{}, err
	}
	s.AuthType = valueobject.AuthType(authType)
	return entity.RestoreLocalAuthInfo(s)
}
