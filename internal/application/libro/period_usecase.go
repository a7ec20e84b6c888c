package libro

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/libros-fiscales/internal/application/dto"
	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	domainlibro "github.com/jhoicas/libros-fiscales/internal/domain/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// PeriodUseCase casos de uso de los libros de compras y ventas.
type PeriodUseCase struct {
	tx        LibroTxRunner
	periods   repository.PeriodRepository
	purchases repository.PurchaseEntryRepository
	sales     repository.SaleEntryRepository
	moves     repository.MoveRepository
	companies repository.CompanyRepository
	rules     domainlibro.Rules
	now       func() time.Time
}

// NewPeriodUseCase construye el caso de uso.
func NewPeriodUseCase(
	tx LibroTxRunner,
	periods repository.PeriodRepository,
	purchases repository.PurchaseEntryRepository,
	sales repository.SaleEntryRepository,
	moves repository.MoveRepository,
	companies repository.CompanyRepository,
	rules domainlibro.Rules,
) *PeriodUseCase {
	return &PeriodUseCase{
		tx:        tx,
		periods:   periods,
		purchases: purchases,
		sales:     sales,
		moves:     moves,
		companies: companies,
		rules:     rules,
		now:       time.Now,
	}
}

// Create crea un libro en borrador.
func (uc *PeriodUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreatePeriodRequest) (*dto.PeriodResponse, error) {
	kind := entity.LedgerKind(in.Kind)
	if !kind.Valid() {
		return nil, domain.NewValidationError(domain.ErrInvalidInput, "Tipo de libro inválido: %s", in.Kind)
	}
	now := uc.now()
	emitted := now
	if in.Date != "" {
		t, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return nil, domain.NewValidationError(domain.ErrInvalidInput, "Fecha inválida: %s", in.Date)
		}
		emitted = t
	}
	p := &entity.Period{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		Kind:              kind,
		AssistantID:       userID,
		ContadorName:      strings.TrimSpace(in.ContadorName),
		Date:              emitted,
		Year:              in.Year,
		Month:             in.Month,
		IncluirSucursales: in.IncluirSucursales,
		State:             entity.StateDraft,
		Comentarios:       in.Comentarios,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, _, err := p.MonthRange(); err != nil {
		return nil, err
	}
	if err := uc.periods.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPeriodResponse(p), nil
}

// Get devuelve el libro con sus líneas y totales.
func (uc *PeriodUseCase) Get(ctx context.Context, companyID, id string) (*dto.PeriodDetailResponse, error) {
	p, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := &dto.PeriodDetailResponse{Period: *toPeriodResponse(p)}
	if p.Kind.IsSales() {
		all, err := uc.sales.ListByPeriod(ctx, p.ID, true)
		if err != nil {
			return nil, err
		}
		for _, e := range all {
			if e.Cancelled {
				out.Cancelled = append(out.Cancelled, toSaleEntryResponse(e))
			} else {
				out.Sales = append(out.Sales, toSaleEntryResponse(e))
			}
		}
		out.Totals = toTotalsResponse(domainlibro.SaleTotals(all))
		return out, nil
	}
	entries, err := uc.purchases.ListByPeriod(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		out.Purchases = append(out.Purchases, toPurchaseEntryResponse(e))
	}
	out.Totals = toTotalsResponse(domainlibro.PurchaseTotals(entries))
	return out, nil
}

// List lista los libros de la compañía.
func (uc *PeriodUseCase) List(ctx context.Context, companyID string, in dto.ListPeriodsRequest) (*dto.PeriodListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.periods.List(ctx, repository.PeriodFilter{
		CompanyID: companyID,
		Kind:      entity.LedgerKind(in.Kind),
		Year:      in.Year,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PeriodResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPeriodResponse(p))
	}
	return &dto.PeriodListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Update aplica cambios parciales. Fuera de borrador solo se acepta un cambio de estado.
func (uc *PeriodUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdatePeriodRequest) (*dto.PeriodResponse, error) {
	patch := entity.PeriodPatch{
		ContadorName:      in.ContadorName,
		IncluirSucursales: in.IncluirSucursales,
		Comentarios:       in.Comentarios,
	}
	if in.Date != nil {
		t, err := time.Parse(dateLayout, *in.Date)
		if err != nil {
			return nil, domain.NewValidationError(domain.ErrInvalidInput, "Fecha inválida: %s", *in.Date)
		}
		patch.Date = &t
	}
	if in.State != nil {
		st := entity.PeriodState(*in.State)
		patch.State = &st
	}
	return uc.mutate(ctx, companyID, id, func(p *entity.Period) error {
		return p.Apply(patch, uc.now())
	})
}

// MarkValidated pasa el libro a validado.
func (uc *PeriodUseCase) MarkValidated(ctx context.Context, companyID, id string) (*dto.PeriodResponse, error) {
	return uc.mutate(ctx, companyID, id, func(p *entity.Period) error {
		p.MarkValidated(uc.now())
		return nil
	})
}

// ResetToDraft vuelve el libro a borrador.
func (uc *PeriodUseCase) ResetToDraft(ctx context.Context, companyID, id string) (*dto.PeriodResponse, error) {
	return uc.mutate(ctx, companyID, id, func(p *entity.Period) error {
		p.ResetToDraft(uc.now())
		return nil
	})
}

// Rectify vuelve el libro a borrador y registra la nota con el motivo.
func (uc *PeriodUseCase) Rectify(ctx context.Context, companyID, userID, id, reason string) (*dto.PeriodResponse, error) {
	var out *entity.Period
	err := uc.tx.RunLibro(ctx, func(periods repository.PeriodRepository, _ repository.PurchaseEntryRepository, _ repository.SaleEntryRepository, notes repository.NoteRepository) error {
		p, err := lockOwned(ctx, periods, companyID, id)
		if err != nil {
			return err
		}
		now := uc.now()
		body, err := rectify(p, reason, now)
		if err != nil {
			return err
		}
		if err := periods.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return notes.Create(ctx, &entity.Note{
			ID:        uuid.New().String(),
			ResModel:  "libro." + string(p.Kind),
			ResID:     p.ID,
			AuthorID:  userID,
			Body:      body,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toPeriodResponse(out), nil
}

func rectify(r entity.Rectifiable, reason string, now time.Time) (string, error) {
	return r.Rectify(reason, now)
}

// Delete elimina el libro junto con todas sus líneas.
func (uc *PeriodUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.tx.RunLibro(ctx, func(periods repository.PeriodRepository, purchases repository.PurchaseEntryRepository, sales repository.SaleEntryRepository, _ repository.NoteRepository) error {
		p, err := lockOwned(ctx, periods, companyID, id)
		if err != nil {
			return err
		}
		if p.Kind.IsSales() {
			if err := sales.ReplaceForPeriod(ctx, p.ID, nil, nil); err != nil {
				return err
			}
		} else if err := purchases.ReplaceForPeriod(ctx, p.ID, nil); err != nil {
			return err
		}
		return periods.Delete(ctx, p.ID)
	})
}

// Load genera el detalle del libro con las facturas contabilizadas del periodo.
// Las líneas se calculan antes de abrir la transacción y se reemplazan dentro de ella.
func (uc *PeriodUseCase) Load(ctx context.Context, companyID, id string, in dto.LoadPeriodRequest) (*dto.LoadResult, error) {
	p, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	from, to, err := p.MonthRange()
	if err != nil {
		return nil, err
	}
	if err := p.EnsureDraft(); err != nil {
		return nil, err
	}
	from, to, err = narrowRange(from, to, in)
	if err != nil {
		return nil, err
	}

	companyIDs := []string{p.CompanyID}
	if p.IncluirSucursales {
		branches, err := uc.companies.ListBranchIDs(ctx, p.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("libro: sucursales: %w", err)
		}
		companyIDs = append(companyIDs, branches...)
	}

	posted, err := uc.moves.Search(ctx, repository.MoveFilter{
		CompanyIDs: companyIDs,
		MoveTypes:  domainlibro.MoveTypes(p.Kind),
		State:      entity.MoveStatePosted,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, fmt.Errorf("libro: facturas: %w", err)
	}

	res := &dto.LoadResult{}
	var replace func(repository.PurchaseEntryRepository, repository.SaleEntryRepository) error

	if p.Kind.IsSales() {
		cancelled, err := uc.moves.Search(ctx, repository.MoveFilter{
			CompanyIDs: companyIDs,
			MoveTypes:  domainlibro.CancelledMoveTypes(),
			State:      entity.MoveStateCancel,
			From:       from,
			To:         to,
		})
		if err != nil {
			return nil, fmt.Errorf("libro: facturas anuladas: %w", err)
		}
		built, err := domainlibro.BuildSaleEntries(p.ID, p.Kind, posted, cancelled, uc.rules)
		if err != nil {
			return nil, err
		}
		res.Loaded, res.Skipped, res.Cancelled = len(built.Entries), built.Skipped, len(built.Cancelled)
		replace = func(_ repository.PurchaseEntryRepository, sales repository.SaleEntryRepository) error {
			return sales.ReplaceForPeriod(ctx, p.ID, built.Entries, built.Cancelled)
		}
	} else {
		built, err := domainlibro.BuildPurchaseEntries(p.ID, posted, uc.rules)
		if err != nil {
			return nil, err
		}
		res.Loaded, res.Skipped = len(built.Entries), built.Skipped
		replace = func(purchases repository.PurchaseEntryRepository, _ repository.SaleEntryRepository) error {
			return purchases.ReplaceForPeriod(ctx, p.ID, built.Entries)
		}
	}

	err = uc.tx.RunLibro(ctx, func(periods repository.PeriodRepository, purchases repository.PurchaseEntryRepository, sales repository.SaleEntryRepository, _ repository.NoteRepository) error {
		locked, err := lockOwned(ctx, periods, companyID, id)
		if err != nil {
			return err
		}
		if err := locked.EnsureDraft(); err != nil {
			return err
		}
		if err := replace(purchases, sales); err != nil {
			return err
		}
		locked.UpdatedAt = uc.now()
		return periods.Update(ctx, locked)
	})
	if err != nil {
		return nil, err
	}

	if res.Skipped > 0 {
		log.Warn().
			Str("period_id", p.ID).
			Str("kind", string(p.Kind)).
			Int("loaded", res.Loaded).
			Int("skipped", res.Skipped).
			Msg("libro: documentos omitidos por tipo inválido")
	}
	return res, nil
}

// SelectAll marca todas las líneas para exportación.
func (uc *PeriodUseCase) SelectAll(ctx context.Context, companyID, id string) error {
	return uc.setSelected(ctx, companyID, id, true)
}

// UnselectAll desmarca todas las líneas.
func (uc *PeriodUseCase) UnselectAll(ctx context.Context, companyID, id string) error {
	return uc.setSelected(ctx, companyID, id, false)
}

func (uc *PeriodUseCase) setSelected(ctx context.Context, companyID, id string, selected bool) error {
	return uc.tx.RunLibro(ctx, func(periods repository.PeriodRepository, purchases repository.PurchaseEntryRepository, sales repository.SaleEntryRepository, _ repository.NoteRepository) error {
		p, err := lockOwned(ctx, periods, companyID, id)
		if err != nil {
			return err
		}
		if err := p.EnsureDraft(); err != nil {
			return err
		}
		if p.Kind.IsSales() {
			return sales.SetSelectedAll(ctx, p.ID, selected)
		}
		return purchases.SetSelectedAll(ctx, p.ID, selected)
	})
}

// UpdateEntry aplica cambios de usuario sobre una línea del libro.
func (uc *PeriodUseCase) UpdateEntry(ctx context.Context, companyID, periodID, entryID string, in dto.UpdateEntryRequest) error {
	patch := entity.EntryPatch{
		Selected:           in.Selected,
		DUI:                in.DUI,
		TipoOperacion:      in.TipoOperacion,
		Clasificacion:      in.Clasificacion,
		Sector:             in.Sector,
		TipoCostoGasto:     in.TipoCostoGasto,
		TipoOperacionRenta: in.TipoOperacionRenta,
		TipoIngresoRenta:   in.TipoIngresoRenta,
	}
	return uc.tx.RunLibro(ctx, func(periods repository.PeriodRepository, purchases repository.PurchaseEntryRepository, sales repository.SaleEntryRepository, _ repository.NoteRepository) error {
		p, err := lockOwned(ctx, periods, companyID, periodID)
		if err != nil {
			return err
		}
		if err := p.EnsureDraft(); err != nil {
			return err
		}

		if p.Kind.IsSales() {
			e, err := sales.GetByID(ctx, entryID)
			if err != nil {
				return err
			}
			if e == nil || e.PeriodID != p.ID {
				return domain.ErrNotFound
			}
			if err := e.Apply(patch); err != nil {
				return err
			}
			return sales.Update(ctx, e)
		}

		e, err := purchases.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if e == nil || e.PeriodID != p.ID {
			return domain.ErrNotFound
		}
		if err := e.Apply(patch); err != nil {
			return err
		}
		return purchases.Update(ctx, e)
	})
}

// Totals totales recalculados desde las líneas actuales.
func (uc *PeriodUseCase) Totals(ctx context.Context, companyID, id string) (*dto.TotalsResponse, error) {
	p, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	var t domainlibro.Totals
	if p.Kind.IsSales() {
		entries, err := uc.sales.ListByPeriod(ctx, p.ID, false)
		if err != nil {
			return nil, err
		}
		t = domainlibro.SaleTotals(entries)
	} else {
		entries, err := uc.purchases.ListByPeriod(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		t = domainlibro.PurchaseTotals(entries)
	}
	out := toTotalsResponse(t)
	return &out, nil
}

func (uc *PeriodUseCase) mutate(ctx context.Context, companyID, id string, fn func(p *entity.Period) error) (*dto.PeriodResponse, error) {
	var out *entity.Period
	err := uc.tx.RunLibro(ctx, func(periods repository.PeriodRepository, _ repository.PurchaseEntryRepository, _ repository.SaleEntryRepository, _ repository.NoteRepository) error {
		p, err := lockOwned(ctx, periods, companyID, id)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		out = p
		return periods.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toPeriodResponse(out), nil
}

// load obtiene el libro verificando que pertenece a la compañía del token.
func (uc *PeriodUseCase) load(ctx context.Context, companyID, id string) (*entity.Period, error) {
	p, err := uc.periods.GetByID(ctx, id)
	return checkOwner(p, err, companyID)
}

func lockOwned(ctx context.Context, periods repository.PeriodRepository, companyID, id string) (*entity.Period, error) {
	p, err := periods.GetByIDForUpdate(ctx, id)
	return checkOwner(p, err, companyID)
}

func checkOwner(p *entity.Period, err error, companyID string) (*entity.Period, error) {
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// narrowRange intersecta el rango opcional del usuario con el mes del libro.
func narrowRange(from, to time.Time, in dto.LoadPeriodRequest) (time.Time, time.Time, error) {
	if in.DateFrom != "" {
		t, err := time.Parse(dateLayout, in.DateFrom)
		if err != nil {
			return from, to, domain.NewValidationError(domain.ErrInvalidInput, "Fecha inválida: %s", in.DateFrom)
		}
		if t.After(from) {
			from = t
		}
	}
	if in.DateTo != "" {
		t, err := time.Parse(dateLayout, in.DateTo)
		if err != nil {
			return from, to, domain.NewValidationError(domain.ErrInvalidInput, "Fecha inválida: %s", in.DateTo)
		}
		if t.Before(to) {
			to = t
		}
	}
	if from.After(to) {
		return from, to, domain.NewValidationError(domain.ErrInputIncomplete, "El rango de fechas no corresponde al periodo del libro.")
	}
	return from, to, nil
}
