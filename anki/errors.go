package anki

import "fmt"

// ConnectionError means the remote could not be reached at all: the
// transport itself failed (dial, timeout, non-JSON response). The sync
// driver aborts the file being processed when it sees one.
type ConnectionError struct {
	Action string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("anki: connecting for %s: %v", e.Action, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RemoteAPIError wraps a populated `error` field in an AnkiConnect
// response: the transport succeeded but the operation itself failed.
// Callers decide per-operation whether this is surfaced (model/ensure,
// tag-query ops) or merely counted as a skip (per-note ops).
type RemoteAPIError struct {
	Action  string
	Message string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("anki: %s: %s", e.Action, e.Message)
}

// ValidationError means locally-held data failed a sanity check before
// ever reaching the remote — e.g. a note_id_code containing characters
// outside the identity codec's alphabet. The caller treats the stored
// value as absent rather than propagating the error.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "anki: validation: " + e.Reason
}

// ConfigError means a configuration value was unusable. The caller
// warns and substitutes a built-in default.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "anki: config: " + e.Reason
}
