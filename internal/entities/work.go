package entities

import (
	"fmt"

	"github.com/guregu/null"
)

// Work is a movie. Its name is its identity.
type Work struct {
	name        string
	originator  null.String
	releaseDate null.Time
}

// NewWork builds a Work. The name is required, the director and release date may be null.
func NewWork(name string, originator null.String, releaseDate null.Time) (Work, error) {
	if err := validateIdentity("work", name); err != nil {
		return Work{}, err
	}

	return Work{
		name:        name,
		originator:  originator,
		releaseDate: releaseDate,
	}, nil
}

func (w Work) Name() string {
	return w.name
}

// Key returns the identity used to index the work.
func (w Work) Key() string {
	return w.name
}

// Originator is the director of the work.
func (w Work) Originator() null.String {
	return w.originator
}

func (w Work) ReleaseDate() null.Time {
	return w.releaseDate
}

// Equal reports whether both works share the same name.
func (w Work) Equal(other Work) bool {
	return w.name == other.name
}

func (w Work) String() string {
	return fmt.Sprintf("Name: %s\nDirector: %s\nRelease date: %s", w.name, displayString(w.originator), displayDate(w.releaseDate))
}
