package libro_test

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/jhoicas/libros-fiscales/internal/application/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

// memState estado en memoria que imita las tablas del libro.
type memState struct {
	periods   map[string]entity.Period
	purchases map[string][]entity.PurchaseEntry
	sales     map[string][]entity.SaleEntry
	notes     []entity.Note
}

func (s *memState) clone() *memState {
	c := &memState{
		periods:   make(map[string]entity.Period, len(s.periods)),
		purchases: make(map[string][]entity.PurchaseEntry, len(s.purchases)),
		sales:     make(map[string][]entity.SaleEntry, len(s.sales)),
		notes:     slices.Clone(s.notes),
	}
	for k, v := range s.periods {
		c.periods[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = slices.Clone(v)
	}
	for k, v := range s.sales {
		c.sales[k] = slices.Clone(v)
	}
	return c
}

type holder struct{ s *memState }

// memDB base de datos falsa; RunLibro trabaja sobre una copia y solo la publica si fn no falla.
type memDB struct {
	main        *holder
	failReplace error
	locked      []string // ids bloqueados con GetByIDForUpdate dentro de RunLibro
}

var _ libro.LibroTxRunner = (*memDB)(nil)

func newMemDB() *memDB {
	return &memDB{main: &holder{s: &memState{
		periods:   map[string]entity.Period{},
		purchases: map[string][]entity.PurchaseEntry{},
		sales:     map[string][]entity.SaleEntry{},
	}}}
}

func (db *memDB) RunLibro(_ context.Context, fn func(
	periods repository.PeriodRepository,
	purchases repository.PurchaseEntryRepository,
	sales repository.SaleEntryRepository,
	notes repository.NoteRepository,
) error) error {
	tx := &holder{s: db.main.s.clone()}
	if err := fn(&periodRepo{h: tx, onLock: func(id string) { db.locked = append(db.locked, id) }}, &purchaseRepo{h: tx, fail: db.failReplace}, &saleRepo{h: tx, fail: db.failReplace}, &noteRepo{tx}); err != nil {
		return err
	}
	db.main.s = tx.s
	return nil
}

func (db *memDB) periods() *periodRepo     { return &periodRepo{h: db.main} }
func (db *memDB) purchases() *purchaseRepo { return &purchaseRepo{h: db.main} }
func (db *memDB) sales() *saleRepo         { return &saleRepo{h: db.main} }

// ── periodos ─────────────────────────────────────────────────────────────────

type periodRepo struct {
	h      *holder
	onLock func(id string)
}

func (r *periodRepo) Create(_ context.Context, p *entity.Period) error {
	r.h.s.periods[p.ID] = *p
	return nil
}

func (r *periodRepo) GetByID(_ context.Context, id string) (*entity.Period, error) {
	p, ok := r.h.s.periods[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *periodRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Period, error) {
	if r.onLock != nil {
		r.onLock(id)
	}
	return r.GetByID(ctx, id)
}

func (r *periodRepo) List(_ context.Context, f repository.PeriodFilter) ([]*entity.Period, int, error) {
	var out []*entity.Period
	for _, p := range r.h.s.periods {
		if p.CompanyID != f.CompanyID || (f.Kind != "" && p.Kind != f.Kind) || (f.Year != 0 && p.Year != f.Year) {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *periodRepo) Update(_ context.Context, p *entity.Period) error {
	r.h.s.periods[p.ID] = *p
	return nil
}

func (r *periodRepo) Delete(_ context.Context, id string) error {
	delete(r.h.s.periods, id)
	return nil
}

// ── compras ──────────────────────────────────────────────────────────────────

type purchaseRepo struct {
	h    *holder
	fail error
}

func (r *purchaseRepo) ReplaceForPeriod(_ context.Context, periodID string, entries []*entity.PurchaseEntry) error {
	delete(r.h.s.purchases, periodID)
	if r.fail != nil {
		return r.fail
	}
	for _, e := range entries {
		cp := *e
		cp.ID = fmt.Sprintf("%s-c-%d", periodID, e.Sequence)
		r.h.s.purchases[periodID] = append(r.h.s.purchases[periodID], cp)
	}
	return nil
}

func (r *purchaseRepo) ListByPeriod(_ context.Context, periodID string) ([]*entity.PurchaseEntry, error) {
	var out []*entity.PurchaseEntry
	for _, e := range r.h.s.purchases[periodID] {
		cp := e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.PurchaseEntry, error) {
	for _, list := range r.h.s.purchases {
		for _, e := range list {
			if e.ID == id {
				cp := e
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *purchaseRepo) Update(_ context.Context, e *entity.PurchaseEntry) error {
	list := r.h.s.purchases[e.PeriodID]
	for i := range list {
		if list[i].ID == e.ID {
			list[i] = *e
		}
	}
	return nil
}

func (r *purchaseRepo) SetSelectedAll(_ context.Context, periodID string, selected bool) error {
	list := r.h.s.purchases[periodID]
	for i := range list {
		list[i].Selected = selected
	}
	return nil
}

// ── ventas ───────────────────────────────────────────────────────────────────

type saleRepo struct {
	h    *holder
	fail error
}

func (r *saleRepo) ReplaceForPeriod(_ context.Context, periodID string, entries, cancelled []*entity.SaleEntry) error {
	delete(r.h.s.sales, periodID)
	if r.fail != nil {
		return r.fail
	}
	for _, e := range append(slices.Clone(entries), cancelled...) {
		cp := *e
		prefix := "v"
		if e.Cancelled {
			prefix = "a"
		}
		cp.ID = fmt.Sprintf("%s-%s-%d", periodID, prefix, e.Sequence)
		r.h.s.sales[periodID] = append(r.h.s.sales[periodID], cp)
	}
	return nil
}

func (r *saleRepo) ListByPeriod(_ context.Context, periodID string, includeCancelled bool) ([]*entity.SaleEntry, error) {
	var out []*entity.SaleEntry
	for _, e := range r.h.s.sales[periodID] {
		if e.Cancelled && !includeCancelled {
			continue
		}
		cp := e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.SaleEntry, error) {
	for _, list := range r.h.s.sales {
		for _, e := range list {
			if e.ID == id {
				cp := e
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *saleRepo) Update(_ context.Context, e *entity.SaleEntry) error {
	list := r.h.s.sales[e.PeriodID]
	for i := range list {
		if list[i].ID == e.ID {
			list[i] = *e
		}
	}
	return nil
}

func (r *saleRepo) SetSelectedAll(_ context.Context, periodID string, selected bool) error {
	list := r.h.s.sales[periodID]
	for i := range list {
		if !list[i].Cancelled {
			list[i].Selected = selected
		}
	}
	return nil
}

// ── notas, facturas y compañías ──────────────────────────────────────────────

type noteRepo struct{ h *holder }

func (r *noteRepo) Create(_ context.Context, n *entity.Note) error {
	r.h.s.notes = append(r.h.s.notes, *n)
	return nil
}

func (r *noteRepo) ListFor(_ context.Context, resModel, resID string) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range r.h.s.notes {
		if n.ResModel == resModel && n.ResID == resID {
			cp := n
			out = append(out, &cp)
		}
	}
	return out, nil
}

type moveRepo struct {
	moves   []*entity.Move
	filters []repository.MoveFilter
}

func (r *moveRepo) Search(_ context.Context, f repository.MoveFilter) ([]*entity.Move, error) {
	r.filters = append(r.filters, f)
	var out []*entity.Move
	for _, m := range r.moves {
		if m.State != f.State || !slices.Contains(f.MoveTypes, m.MoveType) || !slices.Contains(f.CompanyIDs, m.CompanyID) {
			continue
		}
		if m.InvoiceDate.Before(f.From) || m.InvoiceDate.After(f.To) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type companyRepo struct {
	companies map[string]*entity.Company
}

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *companyRepo) ListBranchIDs(_ context.Context, parentID string) ([]string, error) {
	var out []string
	for _, c := range r.companies {
		if c.ParentID == parentID {
			out = append(out, c.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ── generadores ──────────────────────────────────────────────────────────────

type fakeAnexos struct {
	compras, contribuyentes, consumidor int
}

func (f *fakeAnexos) Compras(entries []*entity.PurchaseEntry) ([]byte, error) {
	f.compras = len(entries)
	return []byte("compras"), nil
}

func (f *fakeAnexos) VentasContribuyentes(entries []*entity.SaleEntry) ([]byte, error) {
	f.contribuyentes = len(entries)
	return []byte("contribuyentes"), nil
}

func (f *fakeAnexos) VentasConsumidor(entries []*entity.SaleEntry) ([]byte, error) {
	f.consumidor = len(entries)
	return []byte("consumidor"), nil
}

type fakeDocs struct {
	last *libro.LedgerData
}

func (f *fakeDocs) Workbook(data *libro.LedgerData) ([]byte, error) {
	f.last = data
	return []byte("PK"), nil
}

func (f *fakeDocs) LedgerPDF(data *libro.LedgerData) ([]byte, error) {
	f.last = data
	return []byte("%PDF-1.3"), nil
}
