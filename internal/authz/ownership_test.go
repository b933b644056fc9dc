package authz

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOwners struct {
	creators map[uuid.UUID]uuid.UUID
	err      error
}

func (f *fakeOwners) CreatorOf(_ context.Context, _ ResourceKind, id uuid.UUID) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	creator, ok := f.creators[id]
	if !ok {
		return uuid.Nil, ErrTargetNotFound
	}
	return creator, nil
}

func TestCheckOwnershipGrantsAuthorOnly(t *testing.T) {
	author := Actor{ID: uuid.New(), Role: RoleOrthodontist}
	colleague := Actor{ID: uuid.New(), Role: RoleOrthodontist}
	noteID := uuid.New()

	guard := NewGuard(&fakeOwners{creators: map[uuid.UUID]uuid.UUID{noteID: author.ID}})

	decision, err := guard.CheckOwnership(context.Background(), author, KindClinicalNote, noteID)
	require.NoError(t, err)
	assert.Equal(t, DecisionGrant, decision)

	// A colleague on the same care team holds generic update rights, but
	// ownership still composes to an overall deny.
	decision, err = guard.CheckOwnership(context.Background(), colleague, KindClinicalNote, noteID)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, decision)
}

func TestCheckOwnershipNoAdministrativeOverride(t *testing.T) {
	admin := Actor{ID: uuid.New(), Role: RoleAdministrative}
	noteID := uuid.New()

	guard := NewGuard(&fakeOwners{creators: map[uuid.UUID]uuid.UUID{noteID: uuid.New()}})

	decision, err := guard.CheckOwnership(context.Background(), admin, KindClinicalNote, noteID)
	require.NoError(t, err)
	assert.Equal(t, DecisionDeny, decision)
}

func TestCheckOwnershipMissingResource(t *testing.T) {
	guard := NewGuard(&fakeOwners{})

	decision, err := guard.CheckOwnership(context.Background(), Actor{ID: uuid.New()}, KindClinicalNote, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, DecisionNotFound, decision)
}

func TestCheckOwnershipLookupErrorDenies(t *testing.T) {
	guard := NewGuard(&fakeOwners{err: fmt.Errorf("connection reset")})

	decision, err := guard.CheckOwnership(context.Background(), Actor{ID: uuid.New()}, KindClinicalNote, uuid.New())
	require.Error(t, err)
	assert.Equal(t, DecisionDeny, decision)
}
