package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

var _ repository.PeriodRepository = (*PeriodRepo)(nil)

const periodColumns = `id::text, company_id::text, kind, assistant_id::text, contador_name, date, year, month,
	incluir_sucursales, state, comentarios, created_at, updated_at`

// PeriodRepo libros en libro_periods. Acepta pool o tx (Querier).
type PeriodRepo struct {
	q Querier
}

// NewPeriodRepository construye el adaptador.
func NewPeriodRepository(q Querier) *PeriodRepo {
	return &PeriodRepo{q: q}
}

// Create persiste un libro nuevo.
func (r *PeriodRepo) Create(ctx context.Context, p *entity.Period) error {
	query := `
		INSERT INTO libro_periods (id, company_id, kind, assistant_id, contador_name, date, year, month,
			incluir_sucursales, state, comentarios, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, string(p.Kind), nullIfEmpty(p.AssistantID), p.ContadorName, nullIfZeroTime(p.Date),
		p.Year, p.Month, p.IncluirSucursales, string(p.State), p.Comentarios, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	return nil
}

// GetByID obtiene un libro; nil si no existe.
func (r *PeriodRepo) GetByID(ctx context.Context, id string) (*entity.Period, error) {
	return r.get(ctx, `SELECT `+periodColumns+` FROM libro_periods WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el libro y bloquea la fila (SELECT FOR UPDATE). Solo tiene efecto dentro de una tx.
func (r *PeriodRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Period, error) {
	return r.get(ctx, `SELECT `+periodColumns+` FROM libro_periods WHERE id = $1 FOR UPDATE`, id)
}

func (r *PeriodRepo) get(ctx context.Context, query, id string) (*entity.Period, error) {
	p, err := scanPeriod(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get period: %w", err)
	}
	return p, nil
}

// List libros de la empresa, más recientes primero, y el total sin paginar.
func (r *PeriodRepo) List(ctx context.Context, f repository.PeriodFilter) ([]*entity.Period, int, error) {
	where := []string{"company_id = $1"}
	args := []any{f.CompanyID}
	if f.Kind != "" {
		args = append(args, string(f.Kind))
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		where = append(where, fmt.Sprintf("year = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM libro_periods WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count periods: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM libro_periods WHERE %s
		ORDER BY year DESC, month DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		periodColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()
	var list []*entity.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan period: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update guarda cabecera y estado del libro.
func (r *PeriodRepo) Update(ctx context.Context, p *entity.Period) error {
	query := `
		UPDATE libro_periods SET contador_name = $2, date = $3, incluir_sucursales = $4, state = $5,
			comentarios = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.ContadorName, nullIfZeroTime(p.Date), p.IncluirSucursales, string(p.State), p.Comentarios, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update period %s: %w", p.ID, pgx.ErrNoRows)
	}
	return nil
}

// Delete elimina el libro; las líneas caen por ON DELETE CASCADE.
func (r *PeriodRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM libro_periods WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	return nil
}

func scanPeriod(row pgx.Row) (*entity.Period, error) {
	var p entity.Period
	var kind, state string
	var assistant *string
	var date *time.Time
	err := row.Scan(
		&p.ID, &p.CompanyID, &kind, &assistant, &p.ContadorName, &date, &p.Year, &p.Month,
		&p.IncluirSucursales, &state, &p.Comentarios, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Kind = entity.LedgerKind(kind)
	p.State = entity.PeriodState(state)
	p.AssistantID = deref(assistant)
	p.Date = derefTime(date)
	return &p, nil
}
