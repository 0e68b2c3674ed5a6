package types

// Connection maps an alias to a peer DID.
type Connection struct {
	Alias Alias `json:"alias"`
	DID   DID   `json:"did"`
}

// ConnectStatus reports what a connect call did to the index.
type ConnectStatus int

const (
	// Created means neither the alias nor the DID was known.
	Created ConnectStatus = iota
	// Replaced means an existing mapping for the alias or the DID was overwritten.
	Replaced
	// Unchanged means the exact mapping already existed.
	Unchanged
)

// String returns the lower-case name of the status.
func (s ConnectStatus) String() string {
	switch s {
	case Created:
		return "created"
	case Replaced:
		return "replaced"
	case Unchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// ConnectResult is returned by connect so last-write-wins is visible to callers.
type ConnectResult struct {
	Connection
	Status ConnectStatus
	// PreviousDID is the DID the alias pointed at before, if it changed.
	PreviousDID DID
	// PreviousAlias is the alias the DID was known by before, if it changed.
	PreviousAlias Alias
	// Paths lists the index entries written.
	Paths []string
}
