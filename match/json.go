package match

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders r as its name, per spec.md §6's "match_reason:
// <ReasonName>".
func (r Reason) MarshalJSON() ([]byte, error) {
	name, ok := reasonName[r]
	if !ok {
		return nil, fmt.Errorf("cannot marshal unknown match reason %d", int(r))
	}

	return json.Marshal(name)
}

var reasonByName = func() map[string]Reason {
	m := make(map[string]Reason, len(reasonName))
	for r, name := range reasonName {
		m[name] = r
	}

	return m
}()

// UnmarshalJSON parses the name MarshalJSON produces back into a Reason.
func (r *Reason) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("error decoding match reason: %w", err)
	}

	parsed, ok := reasonByName[name]
	if !ok {
		return fmt.Errorf("unknown match reason %q", name)
	}

	*r = parsed

	return nil
}
