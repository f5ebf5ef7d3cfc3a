package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrdata/core/binder"
)

type payload struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

func jsonRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()

		var p payload
		err := binder.JSON()(jsonRequest(`{"text":"line1\nline2 <b>","count":3}`, "application/json; charset=utf-8"), &p)
		require.NoError(t, err)
		assert.Equal(t, "line1\nline2 <b>", p.Text, "strings are kept verbatim")
		assert.Equal(t, 3, p.Count)
	})

	t.Run("trailing whitespace is fine", func(t *testing.T) {
		t.Parallel()

		var p payload
		require.NoError(t, binder.JSON()(jsonRequest("{\"text\":\"a\"}\n  ", "application/json"), &p))
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		opts        []binder.Option
		want        error
	}{
		{"missing content type", `{}`, "", nil, binder.ErrMissingContentType},
		{"wrong content type", `{}`, "text/plain", nil, binder.ErrUnsupportedMediaType},
		{"malformed", `{"text":`, "application/json", nil, binder.ErrFailedToParseJSON},
		{"empty", ``, "application/json", nil, binder.ErrFailedToParseJSON},
		{"wrong type", `{"count":"x"}`, "application/json", nil, binder.ErrFailedToParseJSON},
		{"trailing data", `{"text":"a"}{"text":"b"}`, "application/json", nil, binder.ErrFailedToParseJSON},
		{"unknown field", `{"text":"a","extra":1}`, "application/json", nil, binder.ErrFailedToParseJSON},
		{"too large", `{"text":"` + strings.Repeat("a", 100) + `"}`, "application/json", []binder.Option{binder.WithMaxSize(32)}, binder.ErrRequestTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var p payload
			err := binder.JSON(tt.opts...)(jsonRequest(tt.body, tt.contentType), &p)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unknown fields allowed", func(t *testing.T) {
		t.Parallel()

		var p payload
		err := binder.JSON(binder.WithUnknownFields())(jsonRequest(`{"text":"a","extra":1}`, "application/json"), &p)
		require.NoError(t, err)
		assert.Equal(t, "a", p.Text)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var p payload
		err := binder.JSON()(jsonRequest(`{}`, "application/json").WithContext(ctx), &p)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type params struct {
		Text    string `query:"text"`
		Format  string
		Scale   *int   `query:"scale"`
		Debug   bool   `query:"debug"`
		Ignored string `query:"-"`
		hidden  string
	}

	t.Run("binds values", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/?text=hello%20world%0A&format=svg&scale=5&debug=true&Ignored=x&text=second", nil)

		var p params
		require.NoError(t, binder.Query()(req, &p))
		assert.Equal(t, "hello world\n", p.Text)
		assert.Equal(t, "svg", p.Format)
		require.NotNil(t, p.Scale)
		assert.Equal(t, 5, *p.Scale)
		assert.True(t, p.Debug)
		assert.Empty(t, p.Ignored)
		assert.Empty(t, p.hidden)
	})

	t.Run("absent values", func(t *testing.T) {
		t.Parallel()

		var p params
		require.NoError(t, binder.Query()(httptest.NewRequest(http.MethodGet, "/", nil), &p))
		assert.Nil(t, p.Scale)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Parallel()

		var p params
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/?scale=big", nil), &p)
		assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
	})

	t.Run("non-struct target", func(t *testing.T) {
		t.Parallel()

		var s string
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/", nil), &s)
		assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
	})
}
