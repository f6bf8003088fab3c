package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dropDatabas3/studyhub/internal/http/errors"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Email string `json:"email"`
}

func request(body, ct string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if ct != "" {
		r.Header.Set("Content-Type", ct)
	}
	return r
}

func TestReadJSON(t *testing.T) {
	var p payload
	require.NoError(t, ReadJSON(httptest.NewRecorder(), request(`{"email":"a@b.c","extra":1}`, "application/json"), &p))
	require.Equal(t, "a@b.c", p.Email)

	p = payload{}
	require.NoError(t, ReadJSON(httptest.NewRecorder(), request(``, ""), &p))
	require.Empty(t, p.Email)

	err := ReadJSON(httptest.NewRecorder(), request(`{"email":`, "application/json"), &p)
	require.ErrorIs(t, err, errors.ErrInvalidJSON)

	err = ReadJSON(httptest.NewRecorder(), request(`email=a`, "application/x-www-form-urlencoded"), &p)
	require.Equal(t, "BAD_REQUEST", err.(*errors.AppError).Code)

	big := `{"email":"` + strings.Repeat("a", MaxBodySize) + `"}`
	err = ReadJSON(httptest.NewRecorder(), request(big, "application/json"), &p)
	require.ErrorIs(t, err, errors.ErrBodyTooLarge)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"message": "ok"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}
