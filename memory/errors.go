package memory

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Lookup for keys that were never set or have
// been deleted.
var ErrKeyNotFound = errors.New("key not found")

// KeyError reports the key a failed lookup was made for.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrKeyNotFound, e.Key)
}

func (e *KeyError) Unwrap() error {
	return ErrKeyNotFound
}
