// Package policy decides who may act on which resource.
//
// Users are publicly readable but only their owner may change or delete
// them; a violation is ErrForbidden. Todos are never checked here one by
// one: every todo query is scoped to the owner up front, so someone else's
// todo looks exactly like a missing one (ErrNotFound).
package policy

import (
	"fmt"

	"github.com/todozero/todozero/internal/apperr"
	"github.com/todozero/todozero/internal/models"
)

func CanMutateUser(actor *models.User, targetID uint) bool {
	return actor != nil && actor.ID != 0 && actor.ID == targetID
}

// AuthorizeUserMutation returns nil when actor owns the user record targetID.
func AuthorizeUserMutation(actor *models.User, targetID uint) error {
	if actor == nil {
		return apperr.ErrUnauthenticated
	}

	if !CanMutateUser(actor, targetID) {
		return fmt.Errorf("%w: user %d cannot modify user %d", apperr.ErrForbidden, actor.ID, targetID)
	}

	return nil
}

// TodoOwner returns the owner id every todo query issued for actor must be
// filtered by.
func TodoOwner(actor *models.User) (uint, error) {
	if actor == nil || actor.ID == 0 {
		return 0, apperr.ErrUnauthenticated
	}
	return actor.ID, nil
}
