package resource

type ErrorResource struct {
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

func NewError(err error) *ErrorResource {
	return &ErrorResource{Message: err.Error()}
}

// NewUnauthorized points the caller at the login route.
func NewUnauthorized(message, location string) *ErrorResource {
	return &ErrorResource{Message: message, Location: location}
}
