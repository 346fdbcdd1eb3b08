package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erp-api/internal/application/auth"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) List(companyID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if companyID != "" && u.CompanyID != companyID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(id string) error {
	delete(f.users, id)
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*entity.Company)}
}

func (f *fakeCompanyRepo) Create(company *entity.Company) error {
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) Update(company *entity.Company) error {
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyRepo) List(filter repository.CompanyFilter) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCompanyRepo) Delete(id string) error {
	delete(f.companies, id)
	return nil
}

func (f *fakeCompanyRepo) HasData(companyID string) (bool, error) {
	return false, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyActiva   = "empresa-activa"
	companyInactiva = "empresa-inactiva"
	password        = "secreto-de-ocho"
)

type authEnv struct {
	uc          *auth.AuthUseCase
	userRepo    *fakeUserRepo
	companyRepo *fakeCompanyRepo
}

func newAuthEnv() *authEnv {
	userRepo := newFakeUserRepo()
	companyRepo := newFakeCompanyRepo()

	companyRepo.Create(&entity.Company{ID: companyActiva, Name: "Activa SAS", Status: entity.CompanyStatusActive})
	companyRepo.Create(&entity.Company{ID: companyInactiva, Name: "Inactiva SAS", Status: entity.CompanyStatusInactive})

	uc := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "erp-api-test",
	})
	return &authEnv{uc: uc, userRepo: userRepo, companyRepo: companyRepo}
}

func (e *authEnv) seedUser(t *testing.T, companyID, email, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ID:           "user-" + email,
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         email,
		Role:         role,
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioConHash(t *testing.T) {
	env := newAuthEnv()

	resp, err := env.uc.Register(dto.RegisterRequest{
		CompanyID: companyActiva,
		Email:     "nuevo@activa.co",
		Password:  password,
		Name:      "Nuevo Usuario",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleStaff, resp.Role, "sin rol explícito se asigna staff")

	stored, err := env.userRepo.GetByEmail("nuevo@activa.co")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, password, stored.PasswordHash, "el password nunca se guarda plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	env := newAuthEnv()
	env.seedUser(t, companyActiva, "dup@activa.co", domain.RoleStaff)

	_, err := env.uc.Register(dto.RegisterRequest{
		CompanyID: companyActiva,
		Email:     "dup@activa.co",
		Password:  password,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EmpresaInactiva(t *testing.T) {
	env := newAuthEnv()

	_, err := env.uc.Register(dto.RegisterRequest{
		CompanyID: companyInactiva,
		Email:     "alguien@inactiva.co",
		Password:  password,
	})
	assert.ErrorIs(t, err, domain.ErrCompanyInactive)
}

func TestRegister_RolSuperadminNoAsignable(t *testing.T) {
	env := newAuthEnv()

	_, err := env.uc.Register(dto.RegisterRequest{
		CompanyID: companyActiva,
		Email:     "root@activa.co",
		Password:  password,
		Role:      domain.RoleSuperadmin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "superadmin solo nace del seed, no del registro")
}

func TestRegister_EmpresaInexistente(t *testing.T) {
	env := newAuthEnv()

	_, err := env.uc.Register(dto.RegisterRequest{
		CompanyID: "no-existe",
		Email:     "x@y.co",
		Password:  password,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Me
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveTokenYUsuario(t *testing.T) {
	env := newAuthEnv()
	user := env.seedUser(t, companyActiva, "ana@activa.co", domain.RoleManager)

	resp, err := env.uc.Login(dto.LoginRequest{Email: "ana@activa.co", Password: password})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, domain.RoleManager, resp.User.Role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	env := newAuthEnv()
	env.seedUser(t, companyActiva, "ana@activa.co", domain.RoleManager)

	_, err := env.uc.Login(dto.LoginRequest{Email: "ana@activa.co", Password: "otro-password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	env := newAuthEnv()
	_, err := env.uc.Login(dto.LoginRequest{Email: "nadie@activa.co", Password: password})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_EmpresaInactivaBloquea(t *testing.T) {
	env := newAuthEnv()
	env.seedUser(t, companyInactiva, "luis@inactiva.co", domain.RoleAdmin)

	_, err := env.uc.Login(dto.LoginRequest{Email: "luis@inactiva.co", Password: password})
	assert.ErrorIs(t, err, domain.ErrCompanyInactive,
		"desactivar la empresa corta el acceso de todos sus usuarios")
}

func TestLogin_SuperadminSinEmpresa(t *testing.T) {
	env := newAuthEnv()
	env.seedUser(t, "", "root@plataforma.co", domain.RoleSuperadmin)

	resp, err := env.uc.Login(dto.LoginRequest{Email: "root@plataforma.co", Password: password})
	require.NoError(t, err)
	assert.Empty(t, resp.User.CompanyID, "el superadmin no pertenece a ningún tenant")
}

func TestMe_PerfilSinHash(t *testing.T) {
	env := newAuthEnv()
	user := env.seedUser(t, companyActiva, "ana@activa.co", domain.RoleManager)

	resp, err := env.uc.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.Email)
}

func TestMe_Inexistente(t *testing.T) {
	env := newAuthEnv()
	_, err := env.uc.Me("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
