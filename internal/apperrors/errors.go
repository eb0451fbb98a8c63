package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotConfigured indicates that no account mapping exists for the tenant;
// posting cannot proceed until setup has run.
var ErrNotConfigured = errors.New("cash accounts not configured; run setup first")

// ErrCashJournalNotFound is fatal to auto setup: the external system holds
// no cash-type journal and there is no fallback.
var ErrCashJournalNotFound = errors.New("no cash journal found in the ledger system; create a cash journal there and retry setup")

// ErrCashAccountNotFound is fatal to auto setup: the cash journal has no
// default account and no account matched the cash keyword search.
var ErrCashAccountNotFound = errors.New("no cash account found in the ledger system; assign a default account to the cash journal and retry setup")

// ErrLedgerUnavailable wraps transport or auth failures from the external
// ledger system. Such failures are surfaced, never retried here.
var ErrLedgerUnavailable = errors.New("ledger system unavailable")
