package entities

import (
	"fmt"

	"github.com/guregu/null"
)

// Participant is a person credited in works. Its name is its identity.
type Participant struct {
	name      string
	birthdate null.Time
	birthCity null.String
}

// NewParticipant builds a Participant. The name is required, the birthdate and birth city may be null.
func NewParticipant(name string, birthdate null.Time, birthCity null.String) (Participant, error) {
	if err := validateIdentity("participant", name); err != nil {
		return Participant{}, err
	}

	return Participant{
		name:      name,
		birthdate: birthdate,
		birthCity: birthCity,
	}, nil
}

func (p Participant) Name() string {
	return p.name
}

// Key returns the identity used to index the participant.
func (p Participant) Key() string {
	return p.name
}

func (p Participant) Birthdate() null.Time {
	return p.birthdate
}

func (p Participant) BirthCity() null.String {
	return p.birthCity
}

// Equal reports whether both participants share the same name.
func (p Participant) Equal(other Participant) bool {
	return p.name == other.name
}

func (p Participant) String() string {
	return fmt.Sprintf("Name: %s\nBirthday: %s\nBirth city: %s", p.name, displayDate(p.birthdate), displayString(p.birthCity))
}
