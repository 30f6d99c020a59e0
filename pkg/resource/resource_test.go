package resource_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/resource"
)

type item struct {
	ID    uint
	Title string
}

type itemResource struct{}

func (itemResource) ToMap(i item) resource.Map {
	return resource.Map{"id": i.ID, "title": i.Title}
}

func TestManyEncodesEmptyAsArray(t *testing.T) {
	raw, err := json.Marshal(resource.Many[item](itemResource{}, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestOneAndMany(t *testing.T) {
	m := resource.One[item](itemResource{}, item{ID: 2, Title: "Lamps"})
	assert.Equal(t, resource.Map{"id": uint(2), "title": "Lamps"}, m)

	all := resource.Many[item](itemResource{}, []item{{ID: 1, Title: "Beauty"}, {ID: 2, Title: "Lamps"}})
	require.Len(t, all, 2)
	assert.Equal(t, "Beauty", all[0]["title"])
}
