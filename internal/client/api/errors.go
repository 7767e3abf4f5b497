package api

import (
	"errors"
	"fmt"
)

// ErrCommunication covers transport failures and responses that are not the
// expected JSON envelope. Callers show a generic connectivity message.
var ErrCommunication = errors.New("error de comunicación con el servidor")

// GenericFailureMessage is used when the server rejects a request without a
// message of its own.
const GenericFailureMessage = "No se pudo completar la operación."

// BusinessError is a rejection decided by the backend: either a non-2xx
// status with a JSON body, or success:false on a 2xx.
type BusinessError struct {
	Status  int
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// AsBusinessError unwraps err into a *BusinessError when it is one.
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
