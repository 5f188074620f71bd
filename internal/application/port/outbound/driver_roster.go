package outbound

import "context"

// RosterDriver is a row of the relational driver roster, the source the
// seeder bootstraps the location index from.
type RosterDriver struct {
	ID     string
	Active bool
}

type DriverRoster interface {
	ListActive(ctx context.Context) ([]RosterDriver, error)
}
