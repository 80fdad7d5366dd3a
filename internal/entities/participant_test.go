package entities

import (
	"testing"
	"time"

	"github.com/guregu/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParticipant(t *testing.T) {
	birthdate := time.Date(1940, time.April, 25, 0, 0, 0, 0, time.UTC)

	t.Run("🟢builds_participant_with_all_attributes", func(t *testing.T) {
		participant, err := NewParticipant("Al Pacino", null.TimeFrom(birthdate), null.StringFrom("New York"))
		require.NoError(t, err)

		assert.Equal(t, "Al Pacino", participant.Name())
		assert.Equal(t, "Al Pacino", participant.Key())
		assert.Equal(t, null.TimeFrom(birthdate), participant.Birthdate())
		assert.Equal(t, null.StringFrom("New York"), participant.BirthCity())
	})

	t.Run("🔴rejects_empty_name", func(t *testing.T) {
		_, err := NewParticipant("", null.Time{}, null.String{})
		require.Error(t, err)

		assert.ErrorIs(t, err, ErrInvalidEntity)
		assert.EqualError(t, err, "invalid entity: participant: name: This field cannot be empty")
	})
}

func TestParticipant_Equal(t *testing.T) {
	a, err := NewParticipant("Al Pacino", null.Time{}, null.StringFrom("New York"))
	require.NoError(t, err)
	b, err := NewParticipant("Al Pacino", null.TimeFrom(time.Now()), null.String{})
	require.NoError(t, err)
	c, err := NewParticipant("Robert De Niro", null.Time{}, null.StringFrom("New York"))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestParticipant_String(t *testing.T) {
	participant, err := NewParticipant("Al Pacino", null.TimeFrom(time.Date(1940, time.April, 25, 0, 0, 0, 0, time.UTC)), null.StringFrom("New York"))
	require.NoError(t, err)
	assert.Equal(t, "Name: Al Pacino\nBirthday: 1940-04-25\nBirth city: New York", participant.String())

	participant, err = NewParticipant("Al Pacino", null.Time{}, null.String{})
	require.NoError(t, err)
	assert.Equal(t, "Name: Al Pacino\nBirthday: null\nBirth city: null", participant.String())
}
