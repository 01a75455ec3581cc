package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petem573/dealflow/internal/fetcher"
)

func TestGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	client := fetcher.New()
	body, err := client.Get(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, string(body), "hello")
}

func TestGetSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := fetcher.New(fetcher.WithUserAgent("dealflow-test"))
	_, err := client.Get(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "dealflow-test", gotUA)
}

func TestGetNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := fetcher.New()
	_, err := client.Get(context.Background(), srv.URL)

	assert.Error(t, err)
}

func TestGetDocumentParsesHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Test Page</title></head><body></body></html>`))
	}))
	defer srv.Close()

	client := fetcher.New()
	doc, err := client.GetDocument(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "Test Page", doc.Find("title").Text())
}
