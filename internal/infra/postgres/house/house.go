package infra_postgres_house

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/aspecthq/aspect/internal/model"
	usecase_house "github.com/aspecthq/aspect/internal/usecase/house"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type houseDTO struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedBy   uuid.UUID `db:"created_by"`
	InviteCode  string    `db:"invite_code"`
	CreatedAt   time.Time `db:"created_at"`
}

type movieDTO struct {
	HouseID     uuid.UUID      `db:"house_id"`
	MovieID     int64          `db:"movie_id"`
	Title       string         `db:"title"`
	PosterPath  string         `db:"poster_path"`
	Tagline     string         `db:"tagline"`
	ReleaseDate string         `db:"release_date"`
	Genres      pq.StringArray `db:"genres"`
	AddedBy     uuid.UUID      `db:"added_by"`
	AddedByName string         `db:"added_by_name"`
	AddedAt     time.Time      `db:"added_at"`
}

func isUniqueViolation(err error, constraint string) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key")) &&
		strings.Contains(err.Error(), constraint)
}

// Create inserts the house and the creator's membership in one
// transaction, so a half-created house cannot leak.
func (d *Driver) Create(ctx context.Context, house model.House) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO houses (id, name, description, created_by, invite_code, created_at)
		VALUES (:id, :name, :description, :created_by, :invite_code, :created_at)
	`
	_, err = tx.NamedExecContext(ctx, query, houseDTO{
		ID:          house.ID,
		Name:        house.Name,
		Description: house.Description,
		CreatedBy:   house.CreatedBy,
		InviteCode:  house.InviteCode,
		CreatedAt:   house.CreatedAt,
	})
	if err != nil {
		if isUniqueViolation(err, "invite_code") {
			return usecase_house.ErrCodeConflict
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO house_members (house_id, user_id)
		VALUES ($1, $2)
	`, house.ID, house.CreatedBy)
	if err != nil {
		if isUniqueViolation(err, "user_id") {
			return usecase_house.ErrAlreadyInHouse
		}
		return err
	}

	return tx.Commit()
}

func (d *Driver) ByID(ctx context.Context, id uuid.UUID) (model.House, error) {
	var house houseDTO

	query := `
        SELECT id, name, description, created_by, invite_code, created_at
        FROM houses
        WHERE id = $1
    `
	err := d.db.GetContext(ctx, &house, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.House{}, usecase_house.ErrResourceNotFound
		}
		return model.House{}, err
	}

	return d.withMembers(ctx, house)
}

func (d *Driver) ByInviteCode(ctx context.Context, code string) (model.House, error) {
	var house houseDTO

	query := `
        SELECT id, name, description, created_by, invite_code, created_at
        FROM houses
        WHERE invite_code = $1
    `
	err := d.db.GetContext(ctx, &house, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.House{}, usecase_house.ErrResourceNotFound
		}
		return model.House{}, err
	}

	return d.withMembers(ctx, house)
}

func (d *Driver) withMembers(ctx context.Context, house houseDTO) (model.House, error) {
	var members []uuid.UUID

	query := `
        SELECT user_id
        FROM house_members
        WHERE house_id = $1
        ORDER BY joined_at
    `
	if err := d.db.SelectContext(ctx, &members, query, house.ID); err != nil {
		return model.House{}, err
	}

	return model.House{
		ID:          house.ID,
		Name:        house.Name,
		Description: house.Description,
		CreatedBy:   house.CreatedBy,
		InviteCode:  house.InviteCode,
		Members:     members,
		CreatedAt:   house.CreatedAt,
	}, nil
}

func (d *Driver) AddMember(ctx context.Context, houseID, userID uuid.UUID) error {
	_, err := d.db.ExecContext(ctx, `
        INSERT INTO house_members (house_id, user_id)
        VALUES ($1, $2)
    `, houseID, userID)
	if err != nil {
		if isUniqueViolation(err, "user_id") {
			return usecase_house.ErrAlreadyInHouse
		}
		return err
	}
	return nil
}

func (d *Driver) HouseOf(ctx context.Context, userID uuid.UUID) (model.House, error) {
	var house houseDTO

	query := `
        SELECT h.id, h.name, h.description, h.created_by, h.invite_code, h.created_at
        FROM houses h
        JOIN house_members m ON m.house_id = h.id
        WHERE m.user_id = $1
    `
	err := d.db.GetContext(ctx, &house, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.House{}, usecase_house.ErrResourceNotFound
		}
		return model.House{}, err
	}

	return d.withMembers(ctx, house)
}

// ToggleMovie deletes the row if it exists, inserts it otherwise, in a
// single transaction keyed on (house_id, movie_id). Two members racing
// the same toggle cannot clobber each other's movies.
func (d *Driver) ToggleMovie(ctx context.Context, houseID uuid.UUID, movie model.LibraryMovie) (bool, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM houses WHERE id = $1)`, houseID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, usecase_house.ErrResourceNotFound
	}

	res, err := tx.ExecContext(ctx, `
        DELETE FROM house_movies
        WHERE house_id = $1 AND movie_id = $2
    `, houseID, movie.MovieID)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, tx.Commit()
	}

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO house_movies
            (house_id, movie_id, title, poster_path, tagline, release_date, genres, added_by, added_by_name, added_at)
        VALUES
            (:house_id, :movie_id, :title, :poster_path, :tagline, :release_date, :genres, :added_by, :added_by_name, :added_at)
    `, movieDTO{
		HouseID:     houseID,
		MovieID:     movie.MovieID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		Tagline:     movie.Tagline,
		ReleaseDate: movie.ReleaseDate,
		Genres:      pq.StringArray(movie.Genres),
		AddedBy:     movie.AddedBy,
		AddedByName: movie.AddedByName,
		AddedAt:     movie.AddedAt,
	})
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (d *Driver) Library(ctx context.Context, houseID uuid.UUID) ([]model.LibraryMovie, error) {
	var exists bool
	err := d.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM houses WHERE id = $1)`, houseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, usecase_house.ErrResourceNotFound
	}

	var rows []movieDTO
	query := `
        SELECT house_id, movie_id, title, poster_path, tagline, release_date, genres, added_by, added_by_name, added_at
        FROM house_movies
        WHERE house_id = $1
        ORDER BY added_at
    `
	if err := d.db.SelectContext(ctx, &rows, query, houseID); err != nil {
		return nil, err
	}

	movies := make([]model.LibraryMovie, 0, len(rows))
	for _, row := range rows {
		movies = append(movies, model.LibraryMovie{
			MovieID:     row.MovieID,
			Title:       row.Title,
			PosterPath:  row.PosterPath,
			Tagline:     row.Tagline,
			ReleaseDate: row.ReleaseDate,
			Genres:      row.Genres,
			AddedBy:     row.AddedBy,
			AddedByName: row.AddedByName,
			AddedAt:     row.AddedAt,
		})
	}
	return movies, nil
}
