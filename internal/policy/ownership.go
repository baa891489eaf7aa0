package policy

import (
	"fmt"
)

// Ownable is anything a user can edit or delete: posts and comments. The
// authorization rule only needs the stored author and the post the resource
// belongs to.
type Ownable interface {
	AuthorID() uint
	ParentPostID() uint
}

// CanModify is the single authorization rule in the system: the actor is the
// stored author. No roles, no admin bypass. actorID 0 means anonymous.
func CanModify(actorID uint, res Ownable) bool {
	return actorID != 0 && actorID == res.AuthorID()
}

// DenialRedirect is where a non-owner lands after a refused mutation: the
// detail page of the post the resource belongs to, never an error page.
func DenialRedirect(res Ownable) string {
	return fmt.Sprintf("/posts/%d", res.ParentPostID())
}
