package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libros-fiscales/internal/application/auth"
	"github.com/jhoicas/libros-fiscales/internal/application/dto"
	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/pkg/jwt"
)

type userRepo struct{ byEmail map[string]*entity.User }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

type companyRepo struct{ ids map[string]bool }

func (r *companyRepo) Create(context.Context, *entity.Company) error { return nil }

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.Company{ID: id, Name: "Comercial Demo"}, nil
}

func (r *companyRepo) ListBranchIDs(context.Context, string) ([]string, error) { return nil, nil }

const companyID = "5f1c2d4e-0000-4000-8000-000000000001"

func newUseCase() *auth.AuthUseCase {
	return auth.NewAuthUseCase(
		&userRepo{byEmail: map[string]*entity.User{}},
		&companyRepo{ids: map[string]bool{companyID: true}},
		auth.JWTConfig{Secret: "secreto-de-pruebas", ExpMinutes: 5, Issuer: "libros-fiscales"},
	)
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "Asistente@Demo.sv", Password: "clave-segura", CompanyID: companyID,
	})
	require.NoError(t, err)
	assert.Equal(t, "asistente@demo.sv", user.Email)
	assert.Equal(t, entity.RoleAsistente, user.Role)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "asistente@demo.sv", Password: "clave-segura"})
	require.NoError(t, err)
	claims, err := jwt.Parse("secreto-de-pruebas", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, companyID, claims.CompanyID)
	assert.Equal(t, entity.RoleAsistente, claims.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	in := dto.RegisterRequest{Email: "contador@demo.sv", Password: "clave-segura", CompanyID: companyID, Role: entity.RoleContador}
	_, err := uc.RegisterUser(ctx, in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, in)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRegister_EmpresaInexistente(t *testing.T) {
	_, err := newUseCase().RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "x@demo.sv", Password: "clave-segura", CompanyID: "otra",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@demo.sv", Password: "clave-segura", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@demo.sv", Password: "otra-clave"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@demo.sv", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}
