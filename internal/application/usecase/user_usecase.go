package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase casos de uso CRUD de usuarios dentro de una empresa.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

func validAssignableRole(role string) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleStaff:
		return true
	}
	return false
}

// Create crea un usuario en la empresa del caller (o en la que el superadmin
// indique). Nunca se puede crear otro superadmin por esta vía.
func (uc *UserUseCase) Create(scope domain.Scope, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	companyID, err := scope.CompanyForCreate(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if !validAssignableRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario de la empresa del caller.
func (uc *UserUseCase) GetByID(scope domain.Scope, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || !scope.CanAccess(user.CompanyID) {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update actualiza nombre, rol o password de un usuario. El rol superadmin
// no se asigna ni se quita por esta vía.
func (uc *UserUseCase) Update(scope domain.Scope, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || !scope.CanAccess(user.CompanyID) {
		return nil, domain.ErrUserNotFound
	}
	if user.Role == domain.RoleSuperadmin {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !validAssignableRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios de la empresa con paginación.
func (uc *UserUseCase) List(scope domain.Scope, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(scope.CompanyFilter(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un usuario. Nadie puede borrarse a sí mismo ni borrar al
// superadmin.
func (uc *UserUseCase) Delete(scope domain.Scope, id string) error {
	if scope.UserID == id {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil || !scope.CanAccess(user.CompanyID) {
		return domain.ErrUserNotFound
	}
	if user.Role == domain.RoleSuperadmin {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
