package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_MarshalJSON(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{"42", `42`},
		{"0", `0`},
		{"0123", `"0123"`},
		{"abc", `"abc"`},
		{"", `""`},
		{"18446744073709551616", `"18446744073709551616"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	var ch Channel
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"ops"}`), &ch))
	assert.Equal(t, ID("7"), ch.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"0123","name":"ops"}`), &ch))
	assert.Equal(t, ID("0123"), ch.ID)

	out, err := json.Marshal(ch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"0123","name":"ops","removable":false}`, string(out))
}
