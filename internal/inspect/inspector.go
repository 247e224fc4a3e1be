// Package inspect runs one read-only verification pass over a database and
// prints what it finds.
package inspect

import (
	"context"
	"io"

	"github.com/koustreak/dbinspect/internal/config"
	"github.com/koustreak/dbinspect/internal/database"
	"github.com/koustreak/dbinspect/internal/errs"
	"github.com/koustreak/dbinspect/internal/logger"
)

// Opener establishes the single connection used by a run.
type Opener func(ctx context.Context, cfg *database.Config) (database.DB, error)

// Inspector reports schema contents and sample data for one database.
type Inspector struct {
	cfg  *config.Config
	open Opener
	out  io.Writer
}

// New returns an Inspector printing its report to out.
func New(cfg *config.Config, open Opener, out io.Writer) *Inspector {
	return &Inspector{cfg: cfg, open: open, out: out}
}

// Run performs the whole pass. The returned error is session-level only:
// ConfigMissing, ConnectionFailed, or QueryFailed when the table listing
// fails. Per-table failures are printed and never returned.
//
// Diagnostics go to the logger carried by ctx, if any.
func (i *Inspector) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	rep := newReport(i.out, i.cfg.SampleWidth)

	if i.cfg.URL == "" {
		rep.configMissing(i.cfg.URLVar)
		return errs.ConfigMissing(i.cfg.URLVar)
	}

	desc, err := i.cfg.Descriptor()
	if err != nil {
		rep.connectionFailed(err)
		return errs.Wrap(errs.KindConnectionFailed, "invalid connection URL", err)
	}

	log.With().Str("target", desc.String()).Logger().Debug("connecting")
	db, err := i.open(ctx, desc)
	if err != nil {
		rep.connectionFailed(err)
		if errs.IsConnectionFailed(err) {
			return err
		}
		return errs.Wrap(errs.KindConnectionFailed, "connect failed", err)
	}
	defer func() {
		if err := db.Close(ctx); err != nil {
			log.WarnErr("close connection", err)
		}
	}()

	rep.connected(serverInfo(ctx, db, log))

	tables, err := db.ListTables(ctx)
	if err != nil {
		rep.listFailed(err)
		return errs.Wrap(errs.KindQueryFailed, "list tables", err)
	}
	rep.tables(tables)

	rep.countsHeader()
	for _, table := range i.cfg.Tables {
		tlog := log.With().Str("table", table).Logger()
		if err := inspectTable(ctx, db, rep, tlog, table); err != nil {
			rep.tableError(table, err)
			tlog.WarnErr("table inspection failed", errs.ForTable(table, err))
		}
	}

	rep.completed()
	return nil
}

// inspectTable prints the count of table and, when non-empty, one sample row.
func inspectTable(ctx context.Context, db database.DB, rep *report, log *logger.Logger, table string) error {
	log.Debug("counting rows")
	n, err := database.CountRows(ctx, db, table)
	if err != nil {
		return err
	}
	rep.count(table, n)
	if n == 0 {
		return nil
	}

	log.Debug("fetching sample row")
	row, err := database.FetchSample(ctx, db, table)
	if err != nil {
		return err
	}
	if row == nil {
		// Emptied between COUNT and SELECT.
		return nil
	}

	text, err := row.Indented()
	if err != nil {
		return err
	}
	rep.sample(text)
	return nil
}

// serverInfo is best effort; a failure only costs the banner line.
func serverInfo(ctx context.Context, db database.DB, log *logger.Logger) *database.ServerInfo {
	info, err := db.ServerInfo(ctx)
	if err != nil {
		log.WarnErr("server info unavailable", err)
		return nil
	}
	return info
}
