package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa o sucursal.
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	NIT  string `json:"nit" validate:"required,max=20"`
	NRC  string `json:"nrc" validate:"omitempty,max=20"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	NIT       string    `json:"nit"`
	NRC       string    `json:"nrc"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyDetailResponse empresa con sus sucursales activas.
type CompanyDetailResponse struct {
	CompanyResponse
	Branches []CompanyResponse `json:"branches"`
}
