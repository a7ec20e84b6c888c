package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

var (
	_ repository.PurchaseEntryRepository = (*PurchaseEntryRepo)(nil)
	_ repository.SaleEntryRepository     = (*SaleEntryRepo)(nil)
)

// ── compras ──────────────────────────────────────────────────────────────────

const purchaseColumns = `id::text, period_id::text, sequence, move_id::text, partner_id::text, partner_name, partner_nit,
	dui, invoice_date, codigo_mh, doc_type, dcl, doc_number, control_number, generation_code, received_seal,
	doc_class, internas_exentas, internaciones_exentas, importaciones_exentas, internas_gravadas,
	internaciones_gravadas_bienes, importaciones_gravadas_bienes, importaciones_gravadas_servicios,
	credito_fiscal, total, tipo_operacion, clasificacion, sector, tipo_costo_gasto, selected`

// PurchaseEntryRepo líneas del libro de compras (libro_compras_lines).
type PurchaseEntryRepo struct {
	q Querier
}

// NewPurchaseEntryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPurchaseEntryRepository(q Querier) *PurchaseEntryRepo {
	return &PurchaseEntryRepo{q: q}
}

// ReplaceForPeriod borra las líneas del libro e inserta las nuevas en un solo batch.
// Llamarlo dentro de una transacción para que el reemplazo sea atómico.
func (r *PurchaseEntryRepo) ReplaceForPeriod(ctx context.Context, periodID string, entries []*entity.PurchaseEntry) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM libro_compras_lines WHERE period_id = $1`, periodID)
	const insert = `
		INSERT INTO libro_compras_lines (id, period_id, sequence, move_id, partner_id, partner_name, partner_nit,
			dui, invoice_date, codigo_mh, doc_type, dcl, doc_number, control_number, generation_code, received_seal,
			doc_class, internas_exentas, internaciones_exentas, importaciones_exentas, internas_gravadas,
			internaciones_gravadas_bienes, importaciones_gravadas_bienes, importaciones_gravadas_servicios,
			credito_fiscal, total, tipo_operacion, clasificacion, sector, tipo_costo_gasto, selected)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)`
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.PeriodID = periodID
		batch.Queue(insert,
			e.ID, periodID, e.Sequence, nullIfEmpty(e.MoveID), nullIfEmpty(e.PartnerID), e.PartnerName, e.PartnerNIT,
			e.DUI, nullIfZeroTime(e.InvoiceDate), e.CodigoMH, e.DocType, e.DCL, e.DocNumber, e.ControlNumber,
			e.GenerationCode, e.ReceivedSeal, e.DocClass, e.InternasExentas, e.InternacionesExentas,
			e.ImportacionesExentas, e.InternasGravadas, e.InternacionesGravadasBienes, e.ImportacionesGravadasBienes,
			e.ImportacionesGravadasServicios, e.CreditoFiscal, e.Total, e.TipoOperacion, e.Clasificacion,
			e.Sector, e.TipoCostoGasto, e.Selected,
		)
	}
	if err := execBatch(ctx, r.q, batch); err != nil {
		return fmt.Errorf("replace purchase entries: %w", err)
	}
	return nil
}

// ListByPeriod líneas del libro por número correlativo.
func (r *PurchaseEntryRepo) ListByPeriod(ctx context.Context, periodID string) ([]*entity.PurchaseEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+purchaseColumns+` FROM libro_compras_lines WHERE period_id = $1 ORDER BY sequence`, periodID)
	if err != nil {
		return nil, fmt.Errorf("list purchase entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseEntry
	for rows.Next() {
		e, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetByID obtiene una línea; nil si no existe.
func (r *PurchaseEntryRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseEntry, error) {
	e, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM libro_compras_lines WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase entry: %w", err)
	}
	return e, nil
}

// Update guarda los campos editables de la línea: DUI, clasificación Q-T y selección.
func (r *PurchaseEntryRepo) Update(ctx context.Context, e *entity.PurchaseEntry) error {
	query := `
		UPDATE libro_compras_lines SET dui = $2, tipo_operacion = $3, clasificacion = $4, sector = $5,
			tipo_costo_gasto = $6, selected = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.DUI, e.TipoOperacion, e.Clasificacion, e.Sector, e.TipoCostoGasto, e.Selected,
	)
	if err != nil {
		return fmt.Errorf("update purchase entry: %w", err)
	}
	return nil
}

// SetSelectedAll marca o desmarca todas las líneas del libro.
func (r *PurchaseEntryRepo) SetSelectedAll(ctx context.Context, periodID string, selected bool) error {
	if _, err := r.q.Exec(ctx, `UPDATE libro_compras_lines SET selected = $2 WHERE period_id = $1`, periodID, selected); err != nil {
		return fmt.Errorf("select purchase entries: %w", err)
	}
	return nil
}

func scanPurchase(row pgx.Row) (*entity.PurchaseEntry, error) {
	var e entity.PurchaseEntry
	var moveID, partnerID *string
	var date *time.Time
	err := row.Scan(
		&e.ID, &e.PeriodID, &e.Sequence, &moveID, &partnerID, &e.PartnerName, &e.PartnerNIT,
		&e.DUI, &date, &e.CodigoMH, &e.DocType, &e.DCL, &e.DocNumber, &e.ControlNumber, &e.GenerationCode,
		&e.ReceivedSeal, &e.DocClass, &e.InternasExentas, &e.InternacionesExentas, &e.ImportacionesExentas,
		&e.InternasGravadas, &e.InternacionesGravadasBienes, &e.ImportacionesGravadasBienes,
		&e.ImportacionesGravadasServicios, &e.CreditoFiscal, &e.Total, &e.TipoOperacion, &e.Clasificacion,
		&e.Sector, &e.TipoCostoGasto, &e.Selected,
	)
	if err != nil {
		return nil, err
	}
	e.MoveID = deref(moveID)
	e.PartnerID = deref(partnerID)
	e.InvoiceDate = derefTime(date)
	return &e, nil
}

// ── ventas ───────────────────────────────────────────────────────────────────

const saleColumns = `id::text, period_id::text, sequence, move_id::text, partner_id::text, partner_name, partner_nit,
	dui, invoice_date, doc_number, control_number, generation_code, received_seal, doc_type, resolution, series,
	exentas, exentas_no_sujetas, no_sujetas, gravadas_locales, export_centroamerica, export_fuera_centroamerica,
	export_servicios, zonas_francas, cuenta_terceros, debito_terceros, gravadas, debito_fiscal, total,
	tipo_operacion_renta, tipo_ingreso_renta, selected, cancelled`

// SaleEntryRepo líneas del libro de ventas (libro_ventas_lines), válidas y anuladas.
type SaleEntryRepo struct {
	q Querier
}

// NewSaleEntryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewSaleEntryRepository(q Querier) *SaleEntryRepo {
	return &SaleEntryRepo{q: q}
}

// ReplaceForPeriod borra todas las líneas del libro e inserta las válidas y las anuladas.
func (r *SaleEntryRepo) ReplaceForPeriod(ctx context.Context, periodID string, entries, cancelled []*entity.SaleEntry) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM libro_ventas_lines WHERE period_id = $1`, periodID)
	const insert = `
		INSERT INTO libro_ventas_lines (id, period_id, sequence, move_id, partner_id, partner_name, partner_nit,
			dui, invoice_date, doc_number, control_number, generation_code, received_seal, doc_type, resolution,
			series, exentas, exentas_no_sujetas, no_sujetas, gravadas_locales, export_centroamerica,
			export_fuera_centroamerica, export_servicios, zonas_francas, cuenta_terceros, debito_terceros,
			gravadas, debito_fiscal, total, tipo_operacion_renta, tipo_ingreso_renta, selected, cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33)`
	queue := func(e *entity.SaleEntry) {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.PeriodID = periodID
		batch.Queue(insert,
			e.ID, periodID, e.Sequence, nullIfEmpty(e.MoveID), nullIfEmpty(e.PartnerID), e.PartnerName, e.PartnerNIT,
			e.DUI, nullIfZeroTime(e.InvoiceDate), e.DocNumber, e.ControlNumber, e.GenerationCode, e.ReceivedSeal,
			e.DocType, e.Resolution, e.Series, e.Exentas, e.ExentasNoSujetas, e.NoSujetas, e.GravadasLocales,
			e.ExportCentroamerica, e.ExportFueraCentroamerica, e.ExportServicios, e.ZonasFrancas,
			e.CuentaTerceros, e.DebitoTerceros, e.Gravadas, e.DebitoFiscal, e.Total,
			e.TipoOperacionRenta, e.TipoIngresoRenta, e.Selected, e.Cancelled,
		)
	}
	for _, e := range entries {
		queue(e)
	}
	for _, e := range cancelled {
		e.Cancelled = true
		queue(e)
	}
	if err := execBatch(ctx, r.q, batch); err != nil {
		return fmt.Errorf("replace sale entries: %w", err)
	}
	return nil
}

// ListByPeriod líneas válidas por correlativo; con includeCancelled las anuladas van al final.
func (r *SaleEntryRepo) ListByPeriod(ctx context.Context, periodID string, includeCancelled bool) ([]*entity.SaleEntry, error) {
	query := `SELECT ` + saleColumns + ` FROM libro_ventas_lines WHERE period_id = $1`
	if !includeCancelled {
		query += ` AND NOT cancelled`
	}
	query += ` ORDER BY cancelled, sequence`
	rows, err := r.q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("list sale entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleEntry
	for rows.Next() {
		e, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetByID obtiene una línea; nil si no existe.
func (r *SaleEntryRepo) GetByID(ctx context.Context, id string) (*entity.SaleEntry, error) {
	e, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM libro_ventas_lines WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale entry: %w", err)
	}
	return e, nil
}

// Update guarda los campos editables de la línea: DUI, códigos de renta y selección.
func (r *SaleEntryRepo) Update(ctx context.Context, e *entity.SaleEntry) error {
	query := `
		UPDATE libro_ventas_lines SET dui = $2, tipo_operacion_renta = $3, tipo_ingreso_renta = $4, selected = $5
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, e.ID, e.DUI, e.TipoOperacionRenta, e.TipoIngresoRenta, e.Selected); err != nil {
		return fmt.Errorf("update sale entry: %w", err)
	}
	return nil
}

// SetSelectedAll marca o desmarca las líneas no anuladas del libro.
func (r *SaleEntryRepo) SetSelectedAll(ctx context.Context, periodID string, selected bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE libro_ventas_lines SET selected = $2 WHERE period_id = $1 AND NOT cancelled`, periodID, selected)
	if err != nil {
		return fmt.Errorf("select sale entries: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.SaleEntry, error) {
	var e entity.SaleEntry
	var moveID, partnerID *string
	var date *time.Time
	err := row.Scan(
		&e.ID, &e.PeriodID, &e.Sequence, &moveID, &partnerID, &e.PartnerName, &e.PartnerNIT,
		&e.DUI, &date, &e.DocNumber, &e.ControlNumber, &e.GenerationCode, &e.ReceivedSeal, &e.DocType,
		&e.Resolution, &e.Series, &e.Exentas, &e.ExentasNoSujetas, &e.NoSujetas, &e.GravadasLocales,
		&e.ExportCentroamerica, &e.ExportFueraCentroamerica, &e.ExportServicios, &e.ZonasFrancas,
		&e.CuentaTerceros, &e.DebitoTerceros, &e.Gravadas, &e.DebitoFiscal, &e.Total,
		&e.TipoOperacionRenta, &e.TipoIngresoRenta, &e.Selected, &e.Cancelled,
	)
	if err != nil {
		return nil, err
	}
	e.MoveID = deref(moveID)
	e.PartnerID = deref(partnerID)
	e.InvoiceDate = derefTime(date)
	return &e, nil
}

// execBatch envía el batch y consume todos los resultados en orden.
func execBatch(ctx context.Context, q Querier, batch *pgx.Batch) error {
	results := q.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return err
		}
	}
	return results.Close()
}
