package infra_postgres_user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/aspecthq/aspect/internal/model"
	service_auth "github.com/aspecthq/aspect/internal/service/auth"
	usecase_user "github.com/aspecthq/aspect/internal/usecase/user"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type userDTO struct {
	ID             uuid.UUID      `db:"id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	AvatarURL      string         `db:"avatar_url"`
	PasswordHash   []byte         `db:"password_hash"`
	SelectedGenres pq.StringArray `db:"selected_genres"`
}

func (dto userDTO) toModel() model.User {
	return model.User{
		ID:             dto.ID,
		Name:           dto.Name,
		Email:          dto.Email,
		AvatarURL:      dto.AvatarURL,
		PasswordHash:   dto.PasswordHash,
		SelectedGenres: dto.SelectedGenres,
	}
}

const selectColumns = `id, name, email, avatar_url, password_hash, selected_genres`

func (d *Driver) Create(ctx context.Context, user model.User) error {
	query := `
		INSERT INTO users (id, name, email, avatar_url, password_hash, selected_genres)
		VALUES (:id, :name, :email, :avatar_url, :password_hash, :selected_genres)
	`
	_, err := d.db.NamedExecContext(ctx, query, userDTO{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		AvatarURL:      user.AvatarURL,
		PasswordHash:   user.PasswordHash,
		SelectedGenres: pq.StringArray(user.SelectedGenres),
	})
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key") {
			return service_auth.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (d *Driver) ByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user userDTO

	err := d.db.GetContext(ctx, &user,
		`SELECT `+selectColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			// Both the profile usecase and the auth service call ByID;
			// satisfy both sentinels.
			return model.User{}, errors.Join(usecase_user.ErrUserNotFound, service_auth.ErrUserNotFound)
		}
		return model.User{}, err
	}
	return user.toModel(), nil
}

func (d *Driver) ByEmail(ctx context.Context, email string) (model.User, error) {
	var user userDTO

	err := d.db.GetContext(ctx, &user,
		`SELECT `+selectColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, service_auth.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user.toModel(), nil
}

func (d *Driver) ByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []userDTO
	err := d.db.SelectContext(ctx, &users,
		`SELECT `+selectColumns+` FROM users WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.toModel())
	}
	return out, nil
}

func (d *Driver) SaveGenres(ctx context.Context, id uuid.UUID, genres []string) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE users SET selected_genres = $1 WHERE id = $2`,
		pq.StringArray(genres), id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_user.ErrUserNotFound
	}
	return nil
}

func (d *Driver) SetPasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return service_auth.ErrUserNotFound
	}
	return nil
}
