package synonym

import "errors"

// ErrNameConflict is returned by repositories when a proper name or
// synonym would collide with an already-registered word.
var ErrNameConflict = errors.New("name already registered")
