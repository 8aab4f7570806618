package app

import "errors"

// ErrIncompletePlan is returned when plan creation leaves fields that no
// creator could expand.
var ErrIncompletePlan = errors.New("plan creation incomplete")
