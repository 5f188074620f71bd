package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taxi24/location-service/internal/application/port/outbound"
)

// DriverRosterRepository reads the relational driver roster the seeder
// bootstraps the location index from. The roster is owned by the driver
// identity service; this side only ever reads it.
type DriverRosterRepository struct {
	db *sql.DB
}

func NewDriverRosterRepository(db *sql.DB) *DriverRosterRepository {
	return &DriverRosterRepository{db: db}
}

func (r *DriverRosterRepository) ListActive(ctx context.Context) ([]outbound.RosterDriver, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, active FROM drivers WHERE active = true`)
	if err != nil {
		return nil, fmt.Errorf("query driver roster: %w", err)
	}
	defer rows.Close()

	var drivers []outbound.RosterDriver
	for rows.Next() {
		var d outbound.RosterDriver
		if err := rows.Scan(&d.ID, &d.Active); err != nil {
			return nil, fmt.Errorf("scan driver roster row: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate driver roster: %w", err)
	}
	return drivers, nil
}
