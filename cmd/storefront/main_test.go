package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteList(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"route:list"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	listing := out.String()
	for _, name := range []string{
		"api.root",
		"products.index",
		"collections.destroy",
		"graphql",
		"health",
		"admin.login",
		"admin.products.changelist",
		"admin.customers.bulk_edit",
	} {
		assert.Contains(t, listing, name)
	}
}
