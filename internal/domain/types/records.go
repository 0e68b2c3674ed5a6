package types

// RecordKind selects a subtree of the record store.
type RecordKind string

// Record kinds.
const (
	KindMessage      RecordKind = "messages"
	KindCredential   RecordKind = "credentials"
	KindPresentation RecordKind = "presentations"
)

// String returns the subtree name.
func (k RecordKind) String() string { return string(k) }

// RecordKinds lists every kind in display order.
var RecordKinds = []RecordKind{KindMessage, KindCredential, KindPresentation}
