package proto

import (
	"encoding/json"
	"fmt"
)

func (r Request) Marshal() ([]byte, error) {
	if r.Action != ActionInfo && r.Action != ActionReset {
		return nil, fmt.Errorf("devicecontrol: unknown action %q", r.Action)
	}
	return json.Marshal(r)
}

// MarshalNewRequest builds and encodes a request in one go.
func MarshalNewRequest(id, address string, action Action) ([]byte, error) {
	return Request{ID: id, Address: address, Action: action}.Marshal()
}
