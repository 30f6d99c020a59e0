package testkit

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, scenario *Scenario, got int) {
	t.Helper()
	assert.Equal(t, scenario.ExpectedCode, got,
		"[%s] HTTP status code mismatch", scenario.Name)
}

// AssertJSONBody deep-compares actual against expected after decoding
// both, so key order and whitespace never matter. The scenario's
// IgnoreFields are removed from both sides first.
func AssertJSONBody(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var expVal, actVal interface{}

	require.NoError(t,
		json.Unmarshal(expected, &expVal),
		"[%s] expected response file is not valid JSON", scenario.Name,
	)

	if !assert.NoError(t,
		json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", scenario.Name, string(actual),
	) {
		return
	}

	for _, path := range scenario.IgnoreFields {
		keys := strings.Split(path, ".")
		drop(expVal, keys)
		drop(actVal, keys)
	}

	assert.Equal(t, expVal, actVal,
		"[%s] response body mismatch", scenario.Name)
}

// drop removes the value at keys from a decoded JSON document. Numeric
// keys index arrays; "*" matches every element or member.
func drop(v interface{}, keys []string) {
	if len(keys) == 0 {
		return
	}
	key, rest := keys[0], keys[1:]

	switch node := v.(type) {
	case map[string]interface{}:
		if key == "*" {
			for k := range node {
				if len(rest) == 0 {
					delete(node, k)
				} else {
					drop(node[k], rest)
				}
			}
			return
		}
		if len(rest) == 0 {
			delete(node, key)
			return
		}
		drop(node[key], rest)
	case []interface{}:
		if key == "*" {
			for _, el := range node {
				drop(el, rest)
			}
			return
		}
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(node) {
			return
		}
		drop(node[i], rest)
	}
}
