package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "missing parameter",
			err:  MissingParameter("client_id"),
			want: `missing_parameter error: required parameter "client_id" is missing`,
		},
		{
			name: "remote failure carries status",
			err:  RemoteRequestFailed(404, []byte(`{"error":"not found"}`)),
			want: "remote_request_failed error (code 404): remote request failed",
		},
		{
			name: "wrapped cause",
			err:  AuthenticationFailed(errors.New("boom")),
			want: "authentication_failed error: could not obtain access token: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("get list: %w", MissingParameter("page"))

	assert.True(t, IsMissingParameter(wrapped))
	assert.False(t, IsAuthenticationFailed(wrapped))
	assert.True(t, IsAuthenticationFailed(AuthenticationFailed(nil)))
	assert.True(t, IsUnsupportedProfileType(UnsupportedProfileType("platformid", "add to list")))
	assert.True(t, IsRemoteRequestFailed(RemoteRequestFailed(500, nil)))
	assert.False(t, Is(errors.New("plain"), ErrorTypeNetwork))
}

func TestUnwrapAndStatus(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Type: ErrorTypeNetwork, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, StatusCode(err))
	assert.Equal(t, 502, StatusCode(fmt.Errorf("x: %w", RemoteRequestFailed(502, nil))))
}
