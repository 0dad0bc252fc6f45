package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestPetPayloadFromFlags(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{}
		c.Flags().String("nome", "", "")
		c.Flags().String("raca", "", "")
		c.Flags().Int("idade", 0, "")
		return c
	}

	t.Run("complete", func(t *testing.T) {
		c := newCmd()
		require.NoError(t, c.Flags().Set("nome", "Rex"))
		require.NoError(t, c.Flags().Set("raca", "vira-lata"))
		require.NoError(t, c.Flags().Set("idade", "3"))

		payload, err := petPayloadFromFlags(c)
		require.NoError(t, err)
		assert.Equal(t, "Rex", payload.Name)
		assert.Equal(t, 3, payload.Age)
	})

	t.Run("missing name", func(t *testing.T) {
		c := newCmd()
		require.NoError(t, c.Flags().Set("raca", "vira-lata"))

		_, err := petPayloadFromFlags(c)
		assert.Error(t, err)
	})
}
