package browse

import "github.com/ardnew/iconf/pkg"

// Sentinel errors.
var (
	ErrNoKeys    = pkg.NewError("no keys to browse")
	ErrNoHistory = pkg.NewError("cannot update history")
)
