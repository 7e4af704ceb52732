package state

import (
	"time"

	"tabular/tables"
)

// newLocalEnv creates LocalEnv with document schema supporting tables.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Schema: tables.DefaultSchema(),
	}
}
