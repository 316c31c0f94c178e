package access

import (
	"net/http"
)

type Operation string

const (
	OperationRead   Operation = "read"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// OperationForMethod maps an HTTP verb to the capability operation it
// requires. Unsupported verbs report false and end up as 405s.
func OperationForMethod(method string) (Operation, bool) {
	switch method {
	case http.MethodGet, http.MethodHead:
		return OperationRead, true
	case http.MethodPost:
		return OperationCreate, true
	case http.MethodPut:
		return OperationUpdate, true
	case http.MethodDelete:
		return OperationDelete, true
	default:
		return "", false
	}
}

// Subject is the caller as the authorization layer sees it.
type Subject struct {
	UserID string
	Roles  []string
}

// Decider is the capability check: may this subject perform this operation
// on this entity kind. Handlers never see rule internals.
type Decider interface {
	CanAccess(subject Subject, entity string, op Operation) (bool, error)
}
