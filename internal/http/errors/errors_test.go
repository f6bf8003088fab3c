package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithDetail_DoesNotMutateBase(t *testing.T) {
	e := ErrBadRequest.WithDetail("name is required")
	require.Equal(t, "name is required", e.Detail)
	require.Empty(t, ErrBadRequest.Detail)
}

func TestFromError_UnknownBecomesInternal(t *testing.T) {
	cause := stderrors.New("pg: connection refused")
	appErr := FromError(cause)
	require.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	require.ErrorIs(t, appErr, cause)
}

func TestWriteError_HidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, stderrors.New("secret=hunter2"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "hunter2")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
}

func TestWriteError_TokenKindsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range []*AppError{ErrTokenMissing, ErrTokenExpired, ErrTokenInvalid} {
		rec := httptest.NewRecorder()
		WriteError(rec, e)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.False(t, seen[body["message"]], "duplicate message %q", body["message"])
		seen[body["message"]] = true
	}
}
