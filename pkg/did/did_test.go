package did

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantDID    string
		wantMethod string
		wantErr    bool
	}{
		{name: "bare", in: "NcYxiDXkpYi6ov5FcYDi1e", wantDID: "NcYxiDXkpYi6ov5FcYDi1e"},
		{name: "verkey length", in: "CnEDk9HrMnmiHXEV1WFgbVCRteYnPqsJwrTdcZaNhFVW", wantDID: "CnEDk9HrMnmiHXEV1WFgbVCRteYnPqsJwrTdcZaNhFVW"},
		{name: "qualified", in: "did:sov:WvRwKqxFLtJ3YbhmHZBpmy", wantDID: "WvRwKqxFLtJ3YbhmHZBpmy", wantMethod: "sov"},
		{name: "empty", in: "", wantErr: true},
		{name: "not base58", in: "0OIl", wantErr: true},
		{name: "missing method", in: "did::abc", wantErr: true},
		{name: "missing id", in: "did:sov", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantDID, got.DID)
			require.Equal(t, tt.wantMethod, got.Method)
		})
	}
}

func TestUnqualified(t *testing.T) {
	require.Equal(t, "WvRwKqxFLtJ3YbhmHZBpmy", Unqualified("did:sov:WvRwKqxFLtJ3YbhmHZBpmy"))
	require.Equal(t, "WvRwKqxFLtJ3YbhmHZBpmy", Unqualified("WvRwKqxFLtJ3YbhmHZBpmy"))
}

func TestDIDValue_String(t *testing.T) {
	v := &DIDValue{DID: "abc123", Method: "scr"}
	require.Equal(t, "did:scr:abc123", v.String())
	v = &DIDValue{DID: "abc123"}
	require.Equal(t, "did:abc123", v.String())
}
