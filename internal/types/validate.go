package types

import "github.com/go-playground/validator/v10"

// validate is shared; validator caches struct metadata so one instance is enough.
var validate = validator.New()
