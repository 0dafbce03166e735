package services

import (
	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
)

// Scope is the set of fields a requester is permitted to modify on an item.
type Scope int

const (
	// ScopeFull permits any field, including status. Granted to the owner.
	ScopeFull Scope = iota
	// ScopeClaim permits flipping status to claimed and nothing else.
	// Granted to a non-owner claiming a not-yet-claimed item.
	ScopeClaim
)

// Authorize decides whether requesterID may apply patch to item. It is a
// pure decision function with no I/O; the caller must pass a non-empty,
// pre-filtered patch.
//
// An owner claiming their own item is a normal full edit, not a claim:
// claim notifications only make sense when someone other than the owner
// recognizes the item.
func Authorize(item *models.Item, requesterID string, patch models.ItemPatch) (Scope, error) {
	isOwner := item.OwnerID == requesterID
	isClaimAttempt := patch.Status == models.StatusClaimed && item.Status != models.StatusClaimed

	if !isClaimAttempt && !isOwner {
		// A non-owner may never edit a non-claim field, and may not
		// re-affirm an already-claimed item.
		return 0, &ForbiddenError{Reason: ReasonNotOwner}
	}

	if isClaimAttempt && !isOwner {
		if patch.HasNonStatusFields() {
			// A claimant cannot piggyback edits onto the status flip.
			return 0, &ForbiddenError{Reason: ReasonClaimOnly}
		}
		return ScopeClaim, nil
	}

	return ScopeFull, nil
}
