package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("create a enum of string", func(t *testing.T) {
		type Cadence string

		daily := New(Cadence("daily"))
		require.Equal(t, Cadence("daily"), daily)

		v, err := ToEnum[Cadence]("daily")
		require.NoError(t, err)
		require.Equal(t, daily, v)

		_, err = ToEnum[Cadence]("yearly")
		require.Error(t, err)
	})

	t.Run("unknown enum type", func(t *testing.T) {
		type Unregistered string

		_, err := ToEnum[Unregistered]("foo")
		require.Error(t, err)
	})
}

func TestValues(t *testing.T) {
	type Status string

	pending := New(Status("pending"))
	approved := New(Status("approved"))
	New(Status("pending"))

	require.Equal(t, []Status{pending, approved}, Values[Status]())
}
