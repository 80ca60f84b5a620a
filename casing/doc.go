// Package casing translates caller-facing camelCase field names into the
// snake_case names used on the wire.
//
// The translation works on the generic JSON value space produced by
// encoding/json (maps, slices and scalars). Only mapping keys are rewritten;
// string values are never touched. Responses are not translated back: values
// decoded from the service keep their native snake_case names.
//
// # Usage
//
//	wire, err := casing.Encode(timing.StartTimerOptions{
//		Project:         "/projects/123",
//		ReplaceExisting: true,
//	})
//	// wire == map[string]any{"project": "/projects/123", "replace_existing": true}
package casing
