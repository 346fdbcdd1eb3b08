package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// CompanyUseCase casos de uso de empresas (tenants). La gestión completa es
// de superadmin; un admin solo puede ver y editar la suya.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	txRunner CompanyTxRunner
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, txRunner CompanyTxRunner) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, txRunner: txRunner}
}

// Create crea una empresa y, opcionalmente, su usuario admin inicial en la
// misma transacción. Solo superadmin.
func (uc *CompanyUseCase) Create(ctx context.Context, scope domain.Scope, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !scope.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}
	if in.AdminUser != nil && (in.AdminUser.Email == "" || len(in.AdminUser.Password) < 8) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    entity.CompanyStatusActive,
		LogoURL:   in.LogoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.RunCompany(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if err := companyRepo.Create(company); err != nil {
			return err
		}
		if in.AdminUser == nil {
			return nil
		}
		existing, err := userRepo.GetByEmail(in.AdminUser.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminUser.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		name := in.AdminUser.Name
		if name == "" {
			name = in.AdminUser.Email
		}
		admin := &entity.User{
			ID:           uuid.New().String(),
			CompanyID:    company.ID,
			Email:        in.AdminUser.Email,
			PasswordHash: string(hash),
			Name:         name,
			Role:         domain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return userRepo.Create(admin)
	})
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa. Un usuario regular solo puede ver la propia.
func (uc *CompanyUseCase) GetByID(scope domain.Scope, id string) (*dto.CompanyResponse, error) {
	if !scope.IsSuperadmin() && scope.CompanyID != id {
		return nil, domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update actualiza una empresa. El cambio de Status (activar/desactivar el
// tenant) queda reservado al superadmin.
func (uc *CompanyUseCase) Update(scope domain.Scope, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if !scope.IsSuperadmin() {
		if scope.Role != domain.RoleAdmin || scope.CompanyID != id {
			return nil, domain.ErrForbidden
		}
		if in.Status != nil {
			return nil, domain.ErrForbidden
		}
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.LogoURL != nil {
		company.LogoURL = *in.LogoURL
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.CompanyStatusActive, entity.CompanyStatusInactive:
			company.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List lista empresas con filtros. Solo superadmin.
func (uc *CompanyUseCase) List(scope domain.Scope, filter repository.CompanyFilter) (*dto.CompanyListResponse, error) {
	if !scope.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Delete borra físicamente una empresa. Se rechaza con ErrConflict mientras
// posea usuarios, terceros, productos u órdenes; desactivarla es el camino
// reversible.
func (uc *CompanyUseCase) Delete(scope domain.Scope, id string) error {
	if !scope.IsSuperadmin() {
		return domain.ErrForbidden
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	hasData, err := uc.repo.HasData(id)
	if err != nil {
		return err
	}
	if hasData {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		LogoURL:   c.LogoURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
