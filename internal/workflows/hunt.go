package workflows

import (
	"context"

	"github.com/open-season/openseason/internal/audit"
	"github.com/open-season/openseason/internal/hunts"
	"github.com/open-season/openseason/internal/vault"
)

// CreateHuntOptions configures the create workflow.
type CreateHuntOptions struct {
	// Name is the display name of the new hunt.
	Name string
}

// CreateHunt creates a new hunt. The vault must be unlocked: a hunt made
// while locked could not receive evidence under the right key anyway.
//
// Returns ErrVaultLocked if store holds no session key.
// Returns ErrInvalidCaseName if the name is empty.
func CreateHunt(ctx context.Context, store *vault.KeyStore, opts CreateHuntOptions) (*hunts.Hunt, error) {
	if store.IsLocked() {
		return nil, errVaultLocked()
	}

	h, err := hunts.Create(ctx, huntsRoot(), opts.Name)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("hunt_create")
	entry.CaseID = h.ID
	entry.CaseName = h.Name
	audit.Log(entry)

	return h, nil
}

// ListHunts lists every hunt in the vault. Unreadable hunt directories are
// returned in ListResult.Failed.
func ListHunts(ctx context.Context) (*hunts.ListResult, error) {
	return hunts.List(ctx, huntsRoot())
}

// ShowHunt returns a single hunt with its evidence count.
//
// Returns ErrCaseNotFound if no hunt has that id.
func ShowHunt(ctx context.Context, huntID string) (*hunts.Hunt, error) {
	return hunts.Get(ctx, huntsRoot(), huntID)
}

// RenameHuntOptions configures the rename workflow.
type RenameHuntOptions struct {
	HuntID string
	Name   string
}

// RenameHunt changes a hunt's display name. Its id never changes.
//
// Returns ErrCaseNotFound if no hunt has that id.
// Returns ErrInvalidCaseName if the new name is empty.
func RenameHunt(ctx context.Context, opts RenameHuntOptions) (*hunts.Hunt, error) {
	h, err := hunts.Rename(ctx, huntsRoot(), opts.HuntID, opts.Name)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("hunt_rename")
	entry.CaseID = h.ID
	entry.CaseName = h.Name
	audit.Log(entry)

	return h, nil
}
