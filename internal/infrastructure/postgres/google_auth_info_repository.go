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

type GoogleAuthInfoRepository struct {
	db DBTX
}

var _ repository.GoogleAuthInfoRepository = (*GoogleAuthInfoRepository)(nil)

func NewGoogleAuthInfoRepository(db DBTX) *GoogleAuthInfoRepository {
	return &GoogleAuthInfoRepository{db: db}
}

const googleAuthInfoColumns = `id, user_id, auth_type, sub, avatar_url, created_at, updated_at`

func (r *GoogleAuthInfoRepository) Save(ctx context.Context, g entity.GoogleAuthInfo) error {
	s := g.Snapshot()
	_, err := r.db.Exec(ctx, `
		INSERT INTO google_auth_infos (`+googleAuthInfoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET avatar_url = EXCLUDED.avatar_url, updated_at = EXCLUDED.updated_at
	`, s.ID, s.UserID, s.AuthType.String(), s.Sub, s.AvatarURL, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if name, ok := uniqueViolation(err); ok {
			switch name {
			case constraintGoogleAuthInfoSub:
				return &repository.GoogleSubAlreadyExistsError{Sub: s.Sub}
			case constraintGoogleAuthInfoUser:
				return &repository.AuthInfoAlreadyExistsError{UserID: s.UserID}
			}
		}
		return fmt.Errorf("save google auth info %s: %w", s.ID, err)
	}
	return nil
}

func (r *GoogleAuthInfoRepository) Get(ctx context.Context, id uuid.UUID) (entity.GoogleAuthInfo, error) {
	row := r.db.QueryRow(ctx, `SELECT `+googleAuthInfoColumns+` FROM google_auth_infos WHERE id = $1`, id)

	g, err := scanGoogleAuthInfo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.GoogleAuthInfo{}, &repository.EntityNotFoundError{Repository: "google_auth_infos", ID: id}
	}
	if err != nil {
		return entity.GoogleAuthInfo{}, fmt.Errorf("get google auth info %s: %w", id, err)
	}
	return g, nil
}

func (r *GoogleAuthInfoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM google_auth_infos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete google auth info %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &repository.EntityNotFoundError{Repository: "google_auth_infos", ID: id}
	}
	return nil
}

func (r *GoogleAuthInfoRepository) GetAuthInfoBySub(ctx context.Context, sub string) (entity.GoogleAuthInfo, bool, error) {
	row := r.db.QueryRow(ctx, `SELECT `+googleAuthInfoColumns+` FROM google_auth_infos WHERE sub = $1`, sub)

	g, err := scanGoogleAuthInfo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.GoogleAuthInfo{}, false, nil
	}
	if err != nil {
		return entity.GoogleAuthInfo{}, false, fmt.Errorf("get google auth info by sub: %w", err)
	}
	return g, true, nil
}

func scanGoogleAuthInfo(row pgx.Row) (entity.GoogleAuthInfo, error) {
	var (
		s        entity.GoogleAuthInfoSnapshot
		authType string
	)
	if err := row.Scan(&s.ID, &s.UserID, &authType, &s.Sub, &s.AvatarURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return entity.GoogleAuthInfo{}, err
	}
	s.AuthType = valueobject.AuthType(authType)
	return entity.RestoreGoogleAuthInfo(s)
}
