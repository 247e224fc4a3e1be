// Package dial opens the driver matching a connection descriptor.
package dial

import (
	"context"
	"fmt"

	"github.com/koustreak/dbinspect/internal/database"
	"github.com/koustreak/dbinspect/internal/database/mysql"
	"github.com/koustreak/dbinspect/internal/database/postgres"
	"github.com/koustreak/dbinspect/internal/errs"
)

// Open connects using the driver named by cfg.Driver.
func Open(ctx context.Context, cfg *database.Config) (database.DB, error) {
	switch cfg.Driver {
	case database.DriverPostgres:
		d, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	case database.DriverMySQL:
		d, err := mysql.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errs.New(errs.KindInvalidInput, fmt.Sprintf("unsupported driver %q", cfg.Driver))
	}
}
