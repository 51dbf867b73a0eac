package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdTree(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "seed-gazetteer", "seed-pricing"}, names)

	migrate, _, err := root.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrations", migrate.Flags().Lookup("dir").DefValue)

	seed, _, err := root.Find([]string{"seed-pricing"})
	require.NoError(t, err)
	assert.NotNil(t, seed.Flags().Lookup("file"))
}
