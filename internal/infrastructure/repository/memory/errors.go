package memory

import "errors"

var errMissingID = errors.New("memory repository: item id is required")
