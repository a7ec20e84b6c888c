package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/libros-fiscales/internal/domain"
)

// LedgerKind tipo de libro. Compras tiene un único tipo; ventas se divide en consumidor final y crédito fiscal.
type LedgerKind string

const (
	KindPurchases     LedgerKind = "compras"
	KindFinalConsumer LedgerKind = "consumidor"
	KindFiscalCredit  LedgerKind = "credito"
)

// Valid indica si el tipo es conocido.
func (k LedgerKind) Valid() bool {
	return k == KindPurchases || k == KindFinalConsumer || k == KindFiscalCredit
}

// IsSales indica si el libro es de ventas.
func (k LedgerKind) IsSales() bool {
	return k == KindFinalConsumer || k == KindFiscalCredit
}

// FileLabel nombre usado en los archivos exportados.
func (k LedgerKind) FileLabel() string {
	switch k {
	case KindFinalConsumer:
		return "Ventas_Consumidor_Final"
	case KindFiscalCredit:
		return "Ventas_Credito_Fiscal"
	default:
		return "Compras"
	}
}

// Title nombre legible del libro.
func (k LedgerKind) Title() string {
	switch k {
	case KindFinalConsumer:
		return "Libro de Ventas a Consumidor Final"
	case KindFiscalCredit:
		return "Libro de Ventas a Contribuyentes"
	default:
		return "Libro de Compras"
	}
}

// PeriodState estado del libro.
type PeriodState string

const (
	StateDraft     PeriodState = "draft"
	StateValidated PeriodState = "validated"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName nombre del mes en español; vacío fuera de 1..12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// Rectifiable lo implementa toda entidad tipo libro que puede rectificarse.
// Rectify devuelve la nota de auditoría que debe registrarse.
type Rectifiable interface {
	Rectify(reason string, now time.Time) (note string, err error)
}

var _ Rectifiable = (*Period)(nil)

// Period libro mensual de una compañía. Es dueño exclusivo de sus líneas.
type Period struct {
	ID                string
	CompanyID         string
	Kind              LedgerKind
	AssistantID       string // usuario que creó el libro
	ContadorName      string
	Date              time.Time // fecha de emisión del libro
	Year              int
	Month             int
	IncluirSucursales bool
	State             PeriodState
	Comentarios       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Label periodo legible, p. ej. "Marzo 2024". Vacío si faltan año o mes.
func (p *Period) Label() string {
	if p.Year == 0 || p.Month == 0 {
		return ""
	}
	return fmt.Sprintf("%s %d", MonthName(p.Month), p.Year)
}

// FileName nombre del archivo exportado: Libro_<Tipo>_<Periodo>.<ext>.
func (p *Period) FileName(ext string) string {
	return fmt.Sprintf("Libro_%s_%s.%s", p.Kind.FileLabel(), strings.ReplaceAll(p.Label(), " ", "_"), ext)
}

// MonthRange primer y último día del mes del periodo.
func (p *Period) MonthRange() (from, to time.Time, err error) {
	if p.Year == 0 || p.Month == 0 {
		return time.Time{}, time.Time{}, domain.NewValidationError(domain.ErrInputIncomplete, "Debe especificar Año y Mes.")
	}
	if p.Month < 1 || p.Month > 12 {
		return time.Time{}, time.Time{}, domain.NewValidationError(domain.ErrInputIncomplete, "Mes inválido: %d", p.Month)
	}
	from = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, -1)
	return from, to, nil
}

// IsDraft indica si el libro admite cambios.
func (p *Period) IsDraft() bool {
	return p.State == StateDraft
}

// EnsureDraft devuelve ErrPeriodNotDraft si el libro no está en borrador.
func (p *Period) EnsureDraft() error {
	if !p.IsDraft() {
		return domain.NewValidationError(domain.ErrPeriodNotDraft, "Solo puedes modificar libros en estado Borrador.")
	}
	return nil
}

// PeriodPatch cambios parciales sobre un libro; nil = sin cambio.
type PeriodPatch struct {
	ContadorName      *string
	Date              *time.Time
	IncluirSucursales *bool
	Comentarios       *string
	State             *PeriodState
}

func (pp PeriodPatch) onlyState() bool {
	return pp.ContadorName == nil && pp.Date == nil && pp.IncluirSucursales == nil && pp.Comentarios == nil
}

// Apply aplica el parche. Fuera de borrador solo se admite un cambio exclusivo de estado.
func (p *Period) Apply(patch PeriodPatch, now time.Time) error {
	if !p.IsDraft() && !(patch.State != nil && patch.onlyState()) {
		return p.EnsureDraft()
	}
	if patch.State != nil {
		if *patch.State != StateDraft && *patch.State != StateValidated {
			return domain.NewValidationError(domain.ErrInvalidInput, "Estado inválido: %s", *patch.State)
		}
		p.State = *patch.State
	}
	if patch.ContadorName != nil {
		p.ContadorName = strings.TrimSpace(*patch.ContadorName)
	}
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	if patch.IncluirSucursales != nil {
		p.IncluirSucursales = *patch.IncluirSucursales
	}
	if patch.Comentarios != nil {
		p.Comentarios = *patch.Comentarios
	}
	p.UpdatedAt = now
	return nil
}

// MarkValidated pasa el libro a validado.
func (p *Period) MarkValidated(now time.Time) {
	p.State = StateValidated
	p.UpdatedAt = now
}

// ResetToDraft vuelve el libro a borrador.
func (p *Period) ResetToDraft(now time.Time) {
	p.State = StateDraft
	p.UpdatedAt = now
}

// Rectify devuelve el libro a borrador dejando constancia del motivo. No toca las líneas.
func (p *Period) Rectify(reason string, now time.Time) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", domain.NewValidationError(domain.ErrInputIncomplete, "Debe indicar el motivo de la rectificación.")
	}
	p.ResetToDraft(now)
	return "Libro rectificado. Motivo: " + reason, nil
}
