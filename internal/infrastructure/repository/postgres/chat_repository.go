package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mzhadan/matchwatch/internal/domain/chat"
	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

type chatTableModel struct {
	ID      int64  `db:"id"`
	Title   string `db:"title"`
	Enabled bool   `db:"enabled"`
}

type ChatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) ListEnabled(ctx context.Context) ([]chat.Chat, error) {
	query, args, err := qb.Select("id", "title", "enabled").From("chats").
		Where(qb.Eq("enabled", true)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list chats query: %w", err)
	}

	var rows []chatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	out := make([]chat.Chat, 0, len(rows))
	for _, row := range rows {
		out = append(out, chat.Chat{ID: row.ID, Title: row.Title, Enabled: row.Enabled})
	}
	return out, nil
}
