package entity

// Role is the closed set of authorization roles an account can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Capability names an operation class a role may perform. Handlers check
// capabilities instead of comparing role strings.
type Capability string

const (
	// CapWriteContent covers recipe create/update/delete.
	CapWriteContent Capability = "write_content"
	// CapManageTags covers tag create/rename/delete.
	CapManageTags Capability = "manage_tags"
	// CapModerateComments allows deleting comments owned by other accounts.
	CapModerateComments Capability = "moderate_comments"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapWriteContent:     true,
		CapManageTags:       true,
		CapModerateComments: true,
	},
	RoleUser: {
		CapWriteContent: true,
	},
	RoleGuest: {},
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether the role grants the capability. Unknown roles grant
// nothing.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}
