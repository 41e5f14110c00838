package domain

// Actor is the authenticated user making a request, with their admin role
// already resolved. A nil *Actor means the request is unauthenticated.
type Actor struct {
	UserID  int64
	Email   string
	IsAdmin bool
}

// CanMutate reports whether the actor may edit or delete the given project.
// Admins may mutate anything; otherwise the actor must be the stored owner.
// Projects without an owner (legacy rows) can only be mutated by admins,
// since an owner match can never succeed against an absent value.
func CanMutate(actor *Actor, project *Project) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin {
		return true
	}
	return project.UserID != nil && actor.UserID == *project.UserID
}
