package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Анна"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Анна", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Анна","extra":1}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"слот занят"}`, rec.Body.String())
}

func TestPathInt64(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42", "bad": "-1"})

	id, err := PathInt64(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = PathInt64(req, "bad")
	assert.Error(t, err)

	_, err = PathInt64(req, "missing")
	assert.Error(t, err)
}

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = ParseIDList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = ParseIDList("1,x")
	assert.Error(t, err)

	_, err = ParseIDList("0")
	assert.Error(t, err)
}
