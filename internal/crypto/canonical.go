package crypto

import (
	"bytes"
	"encoding/json"
)

// CanonicalJSON re-encodes v with object keys sorted at every level and no
// insignificant whitespace. Numbers keep their original text.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
