package proto

// Action is the operation requested from the vendor control endpoint.
type Action string

const (
	ActionInfo  Action = "info"
	ActionReset Action = "reset"
)

func (a Action) String() string {
	return string(a)
}

// ReplyStatusOK is the affirmative marker in the vendor's response field.
const ReplyStatusOK = "OK"

// Request is the body POSTed to the vendor control endpoint.
type Request struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Action  Action `json:"action"`
}

// Reply is the vendor answer. Optional fields are nil when the vendor omits
// them or sends something that is not a string.
type Reply struct {
	Response    string
	State       *string
	LastRestart *string
	LastReinit  *string
}

// OK reports whether the vendor affirmed the request.
func (r *Reply) OK() bool {
	return r != nil && r.Response == ReplyStatusOK
}
