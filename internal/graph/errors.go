package graph

import (
	"errors"
	"fmt"

	"eventhub/internal/store"
)

// requestError is a typed resolver error. graphql-go picks up the
// Extensions map and puts it on the formatted error, so clients can
// switch on `extensions.code` instead of parsing messages.
type requestError struct {
	message string
	code    string
}

func (e *requestError) Error() string { return e.message }

func (e *requestError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func notFound(entity, id string) error {
	return &requestError{
		message: fmt.Sprintf("%s with id %q not found", entity, id),
		code:    "NOT_FOUND",
	}
}

// mapErr turns store sentinels into typed GraphQL errors and passes
// anything else through untouched.
func mapErr(err error, entity, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound(entity, id)
	}
	return err
}
