package allocator

import "errors"

// ErrBadRequest signals an invalid allocation argument: a non-power-of-two
// block size, or a request whose size exceeds what this allocator supports.
var ErrBadRequest = errors.New("allocator: bad request")

// ErrOOM signals that the platform allocator refused to back a block
// request. The heap is left in a valid state after either sentinel is
// returned; no partial allocation is ever visible to the caller.
var ErrOOM = errors.New("allocator: out of memory")
