package awaitdb

import (
	"context"
	"fmt"

	"github.com/roach88/awaitdb/engine"
)

// UpgradeFunc is the caller-supplied schema migration routine. It runs
// at most once per open, only when the engine reports that the stored
// version is below the requested one, and strictly before Open
// resolves. It receives the adapted half-open database and the version
// transition in progress.
//
// A non-nil return that is not cancellation-origin fails the whole open
// with an UPGRADE_FAILED error; a cancellation-origin return is treated
// like any other abort and surfaces as ABORTED once the open's own
// context check runs.
type UpgradeFunc func(ctx context.Context, db *DB, oldVersion, newVersion uint64) error

// Open connects to the named database at the requested version and
// resolves to the adapted connection.
//
// The open request can fire up to four notifications. upgradeneeded
// runs the upgrade callback; blocked fails with BLOCKED; error fails
// with the engine's error verbatim; success resolves. Exactly one of
// resolve/fail happens, and the single subscription covering all four
// branches is released on every path — once a terminal branch settles,
// the remaining branches are simply no longer listened for.
func Open(ctx context.Context, eng engine.Engine, name string, version uint64, upgrade UpgradeFunc) (*DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, abortError("open", err)
	}

	req := eng.Open(name, version)
	sub := req.Events().Subscribe(
		engine.EventUpgradeNeeded,
		engine.EventBlocked,
		engine.EventSuccess,
		engine.EventError,
	)
	defer sub.Release()

	for {
		var n engine.Notification
		select {
		case <-ctx.Done():
			return nil, abortError("open", ctx.Err())
		case n = <-sub.C():
		}

		switch n.Name {
		case engine.EventUpgradeNeeded:
			info, ok := n.Value.(engine.UpgradeInfo)
			if !ok {
				return nil, fmt.Errorf("open %q: upgradeneeded carried %T, want engine.UpgradeInfo", name, n.Value)
			}
			if upgrade == nil {
				continue
			}
			if err := upgrade(ctx, newDB(info.Database), info.OldVersion, info.NewVersion); err != nil {
				if IsAborted(err) {
					// Cancellation-origin: not the callback's own
					// failure. The ctx.Done branch settles the open.
					continue
				}
				upgradeErr := &Error{
					Code:    CodeUpgrade,
					Op:      "open",
					Message: fmt.Sprintf("upgrade %q from %d to %d failed", name, info.OldVersion, info.NewVersion),
					Err:     err,
				}
				// The engine still settles the request; a connection
				// it hands out on success must be closed, or the
				// database stays blocked for every future version
				// change.
				drainAndClose(ctx, req, sub)
				return nil, upgradeErr
			}

		case engine.EventBlocked:
			return nil, &Error{
				Code:    CodeBlocked,
				Op:      "open",
				Message: fmt.Sprintf("database %q is blocked by another connection", name),
			}

		case engine.EventError:
			return nil, req.Err()

		case engine.EventSuccess:
			db, ok := req.Result().(engine.Database)
			if !ok {
				return nil, fmt.Errorf("open %q: request resolved with %T, want engine.Database", name, req.Result())
			}
			return newDB(db), nil
		}
	}
}

// drainAndClose consumes notifications until the open request reaches
// a terminal settlement and closes the connection a success carries.
// Used when the open has already failed on the bridge side but the
// engine does not know that.
func drainAndClose(ctx context.Context, req engine.Request, sub *engine.Subscription) {
	for {
		var n engine.Notification
		select {
		case <-ctx.Done():
			return
		case n = <-sub.C():
		}

		switch n.Name {
		case engine.EventSuccess:
			if db, ok := req.Result().(engine.Database); ok {
				db.Close()
			}
			return
		case engine.EventError, engine.EventBlocked:
			return
		}
	}
}

// DeleteDatabase removes the named database.
func DeleteDatabase(ctx context.Context, eng engine.Engine, name string) error {
	return awaitErr(ctx, func() engine.Request { return eng.DeleteDatabase(name) })
}
