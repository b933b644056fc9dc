package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ResourceKind names a resource protected by the ownership guard.
type ResourceKind string

const (
	KindClinicalNote ResourceKind = "clinical_note"
	KindDocument     ResourceKind = "document"
)

// OwnerLookup resolves the creator of a resource. Implementations return
// ErrTargetNotFound when the resource does not exist.
type OwnerLookup interface {
	CreatorOf(ctx context.Context, kind ResourceKind, id uuid.UUID) (uuid.UUID, error)
}

// Guard enforces author-only mutation on top of a generic grant from the
// engine. It never substitutes for the engine, and no role bypasses it:
// an administrative grant to the object type still cannot touch another
// author's note.
type Guard struct {
	owners OwnerLookup
}

func NewGuard(owners OwnerLookup) *Guard {
	return &Guard{owners: owners}
}

// CheckOwnership grants iff the actor created the resource.
func (g *Guard) CheckOwnership(ctx context.Context, actor Actor, kind ResourceKind, resourceID uuid.UUID) (Decision, error) {
	creator, err := g.owners.CreatorOf(ctx, kind, resourceID)
	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return DecisionNotFound, nil
		}
		return DecisionDeny, err
	}

	if creator != actor.ID {
		return DecisionDeny, nil
	}
	return DecisionGrant, nil
}
