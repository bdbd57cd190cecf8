package eventstream

import "errors"

// ErrNilOpEvent indicates a nil event payload was provided to a publisher.
var ErrNilOpEvent = errors.New("nil op event")
