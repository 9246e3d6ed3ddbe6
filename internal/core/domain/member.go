package domain

// Capability strings gate the HTTP surface. They are carried in the member's
// JWT claims and checked by middleware per route group.
const (
	CapAccountingView   = "accounting_view"
	CapAccountingManage = "accounting_manage"
	CapMemberManage     = "member_manage"
)

// Member represents a club member with login credentials and capabilities.
type Member struct {
	MemberID     string   `json:"memberID"` // Primary key (UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"` // Unique
	PasswordHash string   `json:"-"`
	Capabilities []string `json:"capabilities"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
