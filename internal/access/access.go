// Package access decides whether a user may mutate a piece of content.
package access

import (
	"github.com/lshigami/Bulletin/internal/errorz"
	"github.com/lshigami/Bulletin/internal/model"
)

// Owned is content with a single author.
type Owned interface {
	OwnerID() uint
}

// AuthorizeMutation allows only the author of target to edit or delete it.
// It returns errorz.ErrPermissionDenied otherwise, including for a nil actor.
func AuthorizeMutation(actor *model.User, target Owned) error {
	if actor == nil || target == nil || actor.ID == 0 || actor.ID != target.OwnerID() {
		return errorz.ErrPermissionDenied
	}
	return nil
}
