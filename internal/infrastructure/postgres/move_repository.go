package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

var _ repository.MoveRepository = (*MoveRepo)(nil)

// MoveRepo lectura de facturas (account_moves) con su partner y líneas.
type MoveRepo struct {
	q Querier
}

// NewMoveRepository construye el adaptador.
func NewMoveRepository(q Querier) *MoveRepo {
	return &MoveRepo{q: q}
}

// Search facturas que cumplen el filtro, ordenadas por fecha, número e id. Carga las líneas en una segunda consulta.
func (r *MoveRepo) Search(ctx context.Context, f repository.MoveFilter) ([]*entity.Move, error) {
	if len(f.CompanyIDs) == 0 || len(f.MoveTypes) == 0 {
		return nil, nil
	}
	query := `
		SELECT m.id::text, m.company_id::text, m.name, COALESCE(m.ref, ''), m.move_type, m.state, m.invoice_date,
			m.amount_untaxed, m.amount_total, COALESCE(m.document_type_code, ''),
			COALESCE(m.control_number, ''), COALESCE(m.generation_code, ''), COALESCE(m.received_seal, ''),
			COALESCE(m.resolution, ''), COALESCE(m.series, ''),
			COALESCE(p.id::text, ''), COALESCE(p.name, ''), COALESCE(p.vat, ''), COALESCE(p.dui, '')
		FROM account_moves m
		LEFT JOIN partners p ON p.id = m.partner_id
		WHERE m.company_id = ANY($1::uuid[]) AND m.move_type = ANY($2) AND m.state = $3
			AND m.invoice_date BETWEEN $4 AND $5
		ORDER BY m.invoice_date, m.name, m.id`
	rows, err := r.q.Query(ctx, query, f.CompanyIDs, f.MoveTypes, f.State, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("search moves: %w", err)
	}
	defer rows.Close()

	var moves []*entity.Move
	byID := map[string]*entity.Move{}
	var ids []string
	for rows.Next() {
		var m entity.Move
		var date *time.Time
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.Name, &m.Ref, &m.MoveType, &m.State, &date,
			&m.AmountUntaxed, &m.AmountTotal, &m.DocumentTypeCode,
			&m.ControlNumber, &m.GenerationCode, &m.ReceivedSeal, &m.Resolution, &m.Series,
			&m.Partner.ID, &m.Partner.Name, &m.Partner.VAT, &m.Partner.DUI,
		); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		m.InvoiceDate = derefTime(date)
		moves = append(moves, &m)
		byID[m.ID] = &m
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search moves: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if err := r.loadLines(ctx, ids, byID); err != nil {
		return nil, err
	}
	return moves, nil
}

func (r *MoveRepo) loadLines(ctx context.Context, ids []string, byID map[string]*entity.Move) error {
	rows, err := r.q.Query(ctx, `
		SELECT id::text, move_id::text, price_subtotal, price_total, has_tax, price_include
		FROM account_move_lines WHERE move_id = ANY($1::uuid[]) ORDER BY move_id, id`, ids)
	if err != nil {
		return fmt.Errorf("load move lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.MoveLine
		var subtotal, total decimal.Decimal
		if err := rows.Scan(&l.ID, &l.MoveID, &subtotal, &total, &l.HasTax, &l.PriceInclude); err != nil {
			return fmt.Errorf("scan move line: %w", err)
		}
		l.Subtotal, l.Total = subtotal, total
		if m, ok := byID[l.MoveID]; ok {
			m.Lines = append(m.Lines, l)
		}
	}
	return rows.Err()
}
