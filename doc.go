// Package awaitdb bridges a callback-style storage engine into a
// blocking, context-aware API.
//
// Engines of the IndexedDB family expose every operation as a pending
// request handle that later fires exactly one success or error
// notification. This package turns that notification model into plain
// Go calls: each adapted operation takes a context, blocks until the
// request settles, and returns (value, error). Cursor-driven
// enumeration becomes a lazy pull-based sequence.
//
// The adaptation is recursive. Open resolves to a *DB wrapping the
// native database handle; DB.Transaction wraps the native transaction,
// Tx.Store the native object store, and so on down to cursors, so the
// whole hierarchy is adapted as the caller walks it. Wrappers hold
// non-owning references and are built fresh on every call — nothing is
// cached.
//
// # Waiting and cancellation
//
// All blocking is cooperative. WaitFor and WaitAny subscribe to the
// handle's notification channel and select against ctx.Done(); a
// cancelled context surfaces as an ABORTED *Error and every
// subscription is released on every exit path. No timeouts are imposed
// here — bound a wait by deriving a context:
//
//	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
//	defer cancel()
//	v, err := store.Get(ctx, "k")
//
// # Errors
//
// Engine-reported failures pass through verbatim. The package adds
// only three codes of its own: ABORTED (cancellation), BLOCKED (an
// open held up by another connection), and UPGRADE_FAILED (the
// caller's upgrade callback failed). See IsAborted, IsBlocked and
// IsUpgradeError.
//
// # Typical use
//
//	db, err := awaitdb.Open(ctx, eng, "app", 1,
//		func(ctx context.Context, db *awaitdb.DB, oldVersion, newVersion uint64) error {
//			_, err := db.CreateObjectStore("users", engine.StoreOptions{})
//			return err
//		})
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	tx, err := db.Transaction([]string{"users"}, engine.ReadWrite)
//	if err != nil {
//		return err
//	}
//	users, err := tx.Store("users")
//	if err != nil {
//		return err
//	}
//	if _, err := users.Add(ctx, map[string]any{"name": "ada"}, "u1"); err != nil {
//		return err
//	}
//
// The engine package defines the contract a storage engine implements;
// the memdb package provides an in-memory reference engine.
package awaitdb
