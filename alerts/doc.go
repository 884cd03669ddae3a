// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package alerts turns over-voting alerts into the admin live feed and
notification history.

A *Feed satisfies reconcile.Notifier. Each alert produces a notification

	Over-voting detected at PU 001, Kofar Fada. Votes Cast: 1,200, Accredited: 800.

and a feed event

	OVER-VOTING ALERT: PU 001, Kofar Fada reported 1,200 votes with only 800 accredited.

Both lists are newest first and capped at the feed limit. Admins can dismiss
the alert of a polling unit; ActiveOverVoting then drops that unit from the
store's over-voting incidents until a new alert arrives for it.
*/
package alerts
