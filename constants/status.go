package constants

// ResultStatus is the canonical per-file status in a batch result.
type ResultStatus string

// Stable values (these exact strings appear on the wire).
const (
	StatusSuccess ResultStatus = "success" // extraction produced a record
	StatusError   ResultStatus = "error"   // terminal failure for this file
)
