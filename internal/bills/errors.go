package bills

import "errors"

var (
	// ErrNoNavigator is returned by HandleClickNewBill when no Navigator was configured.
	ErrNoNavigator = errors.New("bills: no navigator configured")

	// ErrNoModal is returned by HandleClickIconEye when no Modal was configured.
	ErrNoModal = errors.New("bills: no modal configured")
)
