package usecase

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// CompanyTxRunner abre una transacción SQL y entrega repos de empresa y
// usuario atados a ella. La creación de empresa con admin inicial debe ser
// atómica: o quedan ambos o ninguno.
type CompanyTxRunner interface {
	RunCompany(ctx context.Context, fn func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error) error
}
