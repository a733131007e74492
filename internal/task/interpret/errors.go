package interpret

import "errors"

var (
	ErrNothingToAccept = errors.New("no interpretation ready to accept")
	ErrClosed          = errors.New("interpretation controller closed")
)
