package contract

import "errors"

// ErrStoreUnavailable marks failures where the transaction store could not be reached.
var ErrStoreUnavailable = errors.New("store unavailable")
