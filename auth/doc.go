// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin keys and agent tokens.

Both are HMAC-SHA256 signatures over a scoped subject, URL-safe base64 encoded
without padding. They are deterministic, so nothing has to be stored to
validate them.

# Admin Keys

One key per election:

	adminKey := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, adminKey, salt)

The server logs the key at start-up. Admin requests carry it in X-Admin-Key.

# Agent Tokens

One token per polling unit, issued by an admin:

	token := auth.GenerateAgentToken("PU 001, Kofar Fada", salt)
	err := auth.ValidateAgentToken("PU 001, Kofar Fada", token, salt)

Agent requests carry it in X-Agent-Token. A token only validates for the
polling unit it was issued for, so an agent cannot submit results for another
unit.

Admin keys and agent tokens are signed under different scopes; an admin key
never validates as an agent token for a unit named like the election.
*/
package auth
