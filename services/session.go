package services

// Session is the authentication context passed into every domain operation.
// It lives outside the persisted document; handlers build it from validated
// JWT claims.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// Capability names a domain action a session may perform. Every service
// operation checks exactly one capability before touching state, so there is
// no per-method role branching to drift out of sync.
type Capability string

const (
	CapViewCatalog     Capability = "catalog:view"
	CapManageCatalog   Capability = "catalog:manage"
	CapTrackProgress   Capability = "progress:track"
	CapManageQuestions Capability = "questions:manage"
	CapTakeTests       Capability = "tests:take"
	CapPublishMocks    Capability = "mocks:publish"
	CapManageUsers     Capability = "users:manage"
	CapManageConfig    Capability = "config:manage"
	CapViewLogs        Capability = "logs:view"
)

var roleCapabilities = map[string][]Capability{
	"admin": {
		CapViewCatalog, CapManageCatalog, CapManageQuestions,
		CapPublishMocks, CapManageUsers, CapManageConfig, CapViewLogs,
		CapTakeTests,
	},
	"student": {
		CapViewCatalog, CapTrackProgress, CapTakeTests,
	},
}

// Can reports whether the session's role grants the capability.
func (s Session) Can(c Capability) bool {
	for _, granted := range roleCapabilities[s.Role] {
		if granted == c {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the session belongs to an admin.
func (s Session) IsAdmin() bool {
	return s.Role == "admin"
}

func (s Session) require(c Capability) error {
	if !s.Can(c) {
		return ErrForbidden
	}
	return nil
}
