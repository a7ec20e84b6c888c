package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo notas de auditoría (rectificaciones) ligadas a cualquier registro.
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador.
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

// Create persiste una nota.
func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	query := `
		INSERT INTO notes (id, res_model, res_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, n.ID, n.ResModel, n.ResID, nullIfEmpty(n.AuthorID), n.Body, n.CreatedAt); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// ListFor notas de un registro, más antiguas primero.
func (r *NoteRepo) ListFor(ctx context.Context, resModel, resID string) ([]*entity.Note, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id::text, res_model, res_id::text, COALESCE(author_id::text, ''), body, created_at
		FROM notes WHERE res_model = $1 AND res_id = $2 ORDER BY created_at, id`, resModel, resID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Note
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.ResModel, &n.ResID, &n.AuthorID, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
