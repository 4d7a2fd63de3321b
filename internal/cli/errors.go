package cli

import (
	"fmt"

	"swipelist/internal/store"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type badIndexError struct {
	arg string
}

func (e badIndexError) Error() string {
	return fmt.Sprintf("invalid index %q: expected a non-negative integer", e.arg)
}

// entryErr maps store errors for entry id to CLI errors.
func entryErr(id string, err error) error {
	if store.IsNotFound(err) {
		return errNotFound("entry", id)
	}
	return err
}
