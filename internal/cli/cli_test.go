package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCommandListsEveryBusiness(t *testing.T) {
	cmd := newCatalogCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "bunker")
	assert.Contains(t, out.String(), "Import / Export")
	// Businesses without a production cycle show a dash instead of 0s.
	assert.Contains(t, out.String(), "-")
}

func TestTickCommandRejectsZeroCount(t *testing.T) {
	cmd := newTickCommand(nil)
	cmd.SetArgs([]string{"--count", "0"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
