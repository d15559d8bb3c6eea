package workflows

import (
	"fmt"

	kerrors "github.com/open-season/openseason/internal/errors"
)

func errVaultLocked() error {
	return fmt.Errorf("%w: unlock the vault first", kerrors.ErrVaultLocked)
}
