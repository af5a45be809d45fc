// Package idgen produces correlation ids for ingestion runs.
package idgen

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues run ids. ULIDs sort by creation time, so log lines
// from consecutive runs order naturally by run_id.
type ULIDGenerator struct{}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a fresh run id.
func (ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
