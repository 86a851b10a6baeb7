package proto

import (
	"encoding/json"
	"fmt"
)

// UnmarshalReply decodes a vendor reply. Only a payload that is not a JSON
// object is an error; unknown or mistyped fields are ignored.
func UnmarshalReply(data []byte) (*Reply, error) {
	var envelope map[string]interface{}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("devicecontrol: invalid reply data: %s", err.Error())
	}
	if envelope == nil {
		return nil, fmt.Errorf("devicecontrol: reply is not an object")
	}

	rep := &Reply{}
	if v, ok := stringField(envelope, "response"); ok {
		rep.Response = *v
	}
	rep.State, _ = stringField(envelope, "state")
	rep.LastRestart, _ = stringField(envelope, "lastRestart")
	rep.LastReinit, _ = stringField(envelope, "lastReinit")

	return rep, nil
}

func stringField(envelope map[string]interface{}, key string) (*string, bool) {
	v, ok := envelope[key]
	if !ok {
		return nil, false
	}
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	return &s, true
}
