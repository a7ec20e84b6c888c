package entity

import "time"

// Company representa una empresa contribuyente. Las sucursales son compañías con ParentID.
type Company struct {
	ID        string
	ParentID  string // vacío para la casa matriz
	Name      string
	NIT       string
	NRC       string // Número de Registro de Contribuyente
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Partner proveedor o cliente de una factura.
type Partner struct {
	ID   string
	Name string
	VAT  string // NIT o NRC, tal como está registrado
	DUI  string // Solo personas naturales
}
