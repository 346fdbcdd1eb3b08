package domain

// Scope es el contexto de tenant del caller, derivado del JWT y pasado como
// parámetro explícito a cada caso de uso (nada de estado ambiente).
// Para el superadmin CompanyID queda vacío salvo que pida un filtro explícito.
type Scope struct {
	UserID    string
	CompanyID string
	Role      string
}

// IsSuperadmin indica si el caller puede cruzar tenants.
func (s Scope) IsSuperadmin() bool { return s.Role == RoleSuperadmin }

// CompanyFilter devuelve el filtro de empresa a aplicar en consultas:
// vacío = sin filtro (solo superadmin sin override).
func (s Scope) CompanyFilter() string {
	return s.CompanyID
}

// WithCompany devuelve un scope con el filtro de empresa fijado. Solo tiene
// sentido para superadmin (los demás roles ya vienen atados a su empresa).
func (s Scope) WithCompany(companyID string) Scope {
	s.CompanyID = companyID
	return s
}

// CompanyForCreate resuelve la empresa dueña de un registro nuevo: el
// superadmin debe nombrarla explícitamente; los demás usan la propia.
func (s Scope) CompanyForCreate(explicit string) (string, error) {
	if s.IsSuperadmin() {
		if explicit == "" {
			return "", ErrInvalidInput
		}
		return explicit, nil
	}
	return s.CompanyID, nil
}

// CanAccess indica si el scope puede ver registros de la empresa dada.
func (s Scope) CanAccess(companyID string) bool {
	if s.IsSuperadmin() {
		return s.CompanyID == "" || s.CompanyID == companyID
	}
	return s.CompanyID == companyID
}

// Roles válidos para User.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleStaff      = "staff"
)
