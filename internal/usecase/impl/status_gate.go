package impl

import (
	"zentora/internal/domain/entity"
	domainerrors "zentora/internal/domain/errors"
	"zentora/internal/errors"
)

// checkStatusGate rejects suspended and deleted accounts. Every
// authenticated entry point runs through it, so each status value is
// handled explicitly and an unknown value fails closed.
func checkStatusGate(status entity.UserStatus) error {
	switch status {
	case entity.StatusActive, entity.StatusInactive:
		return nil
	case entity.StatusSuspended:
		return errors.WithStack(domainerrors.ErrAccountSuspended)
	case entity.StatusDeleted:
		return errors.WithStack(domainerrors.ErrAccountDeleted)
	default:
		return domainerrors.ErrInternalError.WrapMessage("unknown account status " + string(status))
	}
}
