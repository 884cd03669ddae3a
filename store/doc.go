// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the session's result records in memory, one per polling
unit.

# Writes

Every mutation runs inside Update, which holds the write lock for the whole
callback:

	views := st.Update(func(tx *store.Tx) {
		r := tx.FindByPollingUnit(pu)
		if r == nil {
			r = tx.Create(pu)
		}
		r.AccreditedVoters = 800
		tx.Touch(r)
	})

Create and Touch stamp the record with the transaction time. When anything
changed, the derived views (vote stats, cancelled votes, over-voting
incidents, coverage) are recomputed before the lock is released, so no reader
sees records without matching views.

# Bulk Operations

	n, err := st.BulkSetStatus(ids, models.StatusCancelled)
	n := st.BulkDelete(ids)
	ok := st.DeleteSingle(id)
	ok, err := st.UpdateSingle(record)

Unknown IDs are skipped. BulkSetStatus and UpdateSingle never re-check the
over-voting rule. UpdateSingle floors negative counts at 0, rejects an empty
polling unit (ErrPollingUnitRequired) and refuses to move a record onto a
polling unit another record already owns (ErrPollingUnitTaken).

# Reads

Views, Records, Get and FindByPollingUnit return deep copies. Records are
kept in insertion order.

# Subscribers

	unsubscribe := st.Subscribe(func(v store.Views) { ... })

Subscribers receive every committed version in order, on the writer's
goroutine. They must not write to the store.
*/
package store
