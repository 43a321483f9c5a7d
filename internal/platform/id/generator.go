// Package id mints the run ids that tie together the log lines of one batch
// command.
package id

import "github.com/google/uuid"

type Generator interface {
	NewID() string
}

// RunIDs issues time-ordered UUIDs, so ids sort by start time in log search.
type RunIDs struct {
	prefix string
}

func NewRunIDs(prefix string) *RunIDs {
	return &RunIDs{prefix: prefix}
}

func (g *RunIDs) NewID() string {
	v, err := uuid.NewV7()
	if err != nil {
		return g.prefix + uuid.NewString()
	}
	return g.prefix + v.String()
}
