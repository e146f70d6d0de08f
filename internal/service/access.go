package service

// AccessService gates privileged operations against the fixed admin
// set from configuration.
type AccessService struct {
	admins map[int64]struct{}
}

// NewAccessService creates the gate from a list of admin ids.
func NewAccessService(adminIDs []int64) *AccessService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &AccessService{admins: admins}
}

// IsAdmin reports whether the actor may use privileged operations.
func (s *AccessService) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

// Count returns the number of configured admins.
func (s *AccessService) Count() int {
	return len(s.admins)
}
