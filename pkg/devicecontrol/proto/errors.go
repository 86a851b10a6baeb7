package proto

import "fmt"

// VendorError is returned when the vendor answered but did not affirm.
type VendorError struct {
	Action   Action
	Address  string
	Response string
}

func NewVendorError(action Action, address, response string) error {
	return &VendorError{
		Action:   action,
		Address:  address,
		Response: response,
	}
}

func (e *VendorError) Error() string {
	if e.Response == "" {
		return fmt.Sprintf("vendor rejected %s for %s: response missing", e.Action, e.Address)
	}
	return fmt.Sprintf("vendor rejected %s for %s: response %q", e.Action, e.Address, e.Response)
}

func IsVendorError(e error) bool {
	_, ok := e.(*VendorError)
	return ok
}

// TransportError covers everything between us and a usable reply: connection
// failures, timeouts, non-2xx statuses and unreadable bodies.
type TransportError struct {
	Action     Action
	Address    string
	StatusCode int
	Err        error
}

func NewTransportError(action Action, address string, statusCode int, err error) error {
	return &TransportError{
		Action:     action,
		Address:    address,
		StatusCode: statusCode,
		Err:        err,
	}
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("vendor %s for %s failed: status %d", e.Action, e.Address, e.StatusCode)
	}
	return fmt.Sprintf("vendor %s for %s failed: %v", e.Action, e.Address, e.Err)
}

func (e *TransportError) Cause() error {
	return e.Err
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsTransportError(e error) bool {
	_, ok := e.(*TransportError)
	return ok
}
