package models

// Owned is implemented by resources that only their owner may mutate.
type Owned interface {
	OwnerID() uint
}

// IsOwnedBy reports whether requesterID owns resource. Anonymous requesters
// (id 0) never own anything.
func IsOwnedBy(resource Owned, requesterID uint) bool {
	if resource == nil || requesterID == 0 {
		return false
	}
	return resource.OwnerID() == requesterID
}
