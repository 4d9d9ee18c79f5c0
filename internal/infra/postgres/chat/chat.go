package infra_postgres_chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aspecthq/aspect/internal/model"
	usecase_chat "github.com/aspecthq/aspect/internal/usecase/chat"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type messageDTO struct {
	ID      uuid.UUID `db:"id"`
	HouseID uuid.UUID `db:"house_id"`
	UserID  uuid.UUID `db:"user_id"`
	Text    string    `db:"text"`
	SentAt  time.Time `db:"sent_at"`
}

func (d *Driver) Append(ctx context.Context, msg model.Message) error {
	query := `
		INSERT INTO messages (id, house_id, user_id, text, sent_at)
		VALUES (:id, :house_id, :user_id, :text, :sent_at)
	`
	_, err := d.db.NamedExecContext(ctx, query, messageDTO{
		ID:      msg.ID,
		HouseID: msg.HouseID,
		UserID:  msg.UserID,
		Text:    msg.Text,
		SentAt:  msg.SentAt,
	})
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return usecase_chat.ErrResourceNotFound
		}
		return err
	}
	return nil
}

// History returns messages in store order; the subscription layer does
// no reordering on top of this.
func (d *Driver) History(ctx context.Context, houseID uuid.UUID) ([]model.Message, error) {
	var rows []messageDTO

	query := `
        SELECT id, house_id, user_id, text, sent_at
        FROM messages
        WHERE house_id = $1
        ORDER BY sent_at
    `
	if err := d.db.SelectContext(ctx, &rows, query, houseID); err != nil {
		return nil, err
	}

	msgs := make([]model.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, model.Message{
			ID:      row.ID,
			HouseID: row.HouseID,
			UserID:  row.UserID,
			Text:    row.Text,
			SentAt:  row.SentAt,
		})
	}
	return msgs, nil
}
