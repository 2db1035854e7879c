package auth

// Role is the coarse-grained access category assigned to every account.
type Role string

const (
	RoleRoot       Role = "root"
	RoleWorker     Role = "worker"
	RoleManager    Role = "manager"
	RoleLogistics  Role = "logistics"
	RoleSMM        Role = "smm"
	RoleCallCenter Role = "call-center"
)

var knownRoles = map[Role]struct{}{
	RoleRoot:       {},
	RoleWorker:     {},
	RoleManager:    {},
	RoleLogistics:  {},
	RoleSMM:        {},
	RoleCallCenter: {},
}

// Valid reports whether the role is one of the fixed enumerated set.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

// Capability is a fine-grained boolean permission, distinct from Role.
type Capability string

const (
	CapabilityEditProducts    Capability = "can_edit_products"
	CapabilityManageLogistics Capability = "can_manage_logistics"
)
