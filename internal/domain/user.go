package domain

// Role values match the persisted documents: administrators route to the
// management surface, everyone else to the shopping surface.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "user"
)

// UserAccount is a stored account record. Pass holds the credential secret
// and must never leave the auth package through a read path: every listing
// strips it first.
type UserAccount struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
	Mobile string `json:"mobile,omitempty"`
	Pass   string `json:"pass,omitempty"`
	Role   string `json:"role"`
}

// Sanitized returns a copy safe for external exposure.
func (u UserAccount) Sanitized() UserAccount {
	u.Pass = ""
	return u
}
