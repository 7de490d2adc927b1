// Package schemas carries the JSON Schema documents describing the external
// snapshot format. The documents are embedded so validation works regardless
// of the working directory the binary runs from.
package schemas

import _ "embed"

var (
	//go:embed profile.schema.json
	Profile []byte

	//go:embed requirement.schema.json
	Requirement []byte

	//go:embed outcome.schema.json
	Outcome []byte
)
