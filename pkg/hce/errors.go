package hce

import "errors"

// ErrConfigurationInvalid is the only error surfaced by the control calls
// (Configure, PutResponse, RemoveResponse). Protocol errors never leave Process.
var ErrConfigurationInvalid = errors.New("hce: invalid configuration")
