package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

const sheetCSV = "Component,Category,Subcategory,Guideline\n" +
	"Button,1. Description,,A button triggers an action\n" +
	"Button,3. Usage,Do,\"Use one, and only one, primary button\"\n"

func TestNew(t *testing.T) {
	tests := []struct {
		location string
		want     any
	}{
		{"https://docs.google.com/spreadsheets/d/x/export?format=csv", &HTTP{}},
		{"http://localhost:8787/", &HTTP{}},
		{"guidelines.xlsx", &File{}},
		{"/tmp/guidelines.csv", &File{}},
		{"file:///tmp/guidelines.csv", &File{}},
		{`C:\docs\guidelines.xlsx`, &File{}},
	}

	for _, tt := range tests {
		src, err := New(tt.location, Options{})
		require.NoError(t, err, tt.location)
		assert.IsType(t, tt.want, src, tt.location)
	}

	_, err := New("ftp://example.com/guidelines.csv", Options{})
	assert.True(t, errors.Is(err, guidedoc.ErrUnsupportedSource))

	_, err = New("  ", Options{})
	assert.True(t, errors.Is(err, guidedoc.ErrUnsupportedSource))
}

func TestFileKey(t *testing.T) {
	src, err := New("file:///tmp/guidelines.xlsx", Options{Load: guidedoc.LoadOptions{Sheet: "Buttons", Range: "A1:D9"}})
	require.NoError(t, err)
	assert.Equal(t, "file:"+filepath.FromSlash("/tmp/guidelines.xlsx")+"#Buttons!A1:D9", src.Key())
}

func TestFileRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guidelines.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheetCSV), 0644))

	src, err := New(path, Options{})
	require.NoError(t, err)

	set, err := src.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Rows, 2)
	assert.Equal(t, "Use one, and only one, primary button", set.Rows[1].Guideline)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Rows(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/utf8":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			_, _ = w.Write([]byte(sheetCSV))
		case "/latin1":
			w.Header().Set("Content-Type", "text/csv; charset=iso-8859-1")
			_, _ = w.Write([]byte("Button,1. Description,,Caf\xe9 menu button\n"))
		case "/missing":
			http.Error(w, "no such sheet", http.StatusNotFound)
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		}
	}))
	defer srv.Close()

	t.Run("utf-8", func(t *testing.T) {
		src := &HTTP{URL: srv.URL + "/utf8"}
		set, err := src.Rows(context.Background())
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/utf8", set.BookName)
		assert.Equal(t, []models.Row{
			{Component: "Button", Category: "1. Description", Guideline: "A button triggers an action"},
			{Component: "Button", Category: "3. Usage", Subcategory: "Do", Guideline: "Use one, and only one, primary button"},
		}, set.Rows)
	})

	t.Run("declared charset", func(t *testing.T) {
		src := &HTTP{URL: srv.URL + "/latin1"}
		set, err := src.Rows(context.Background())
		require.NoError(t, err)
		require.Len(t, set.Rows, 1)
		assert.Equal(t, "Café menu button", set.Rows[0].Guideline)
	})

	t.Run("status error", func(t *testing.T) {
		src := &HTTP{URL: srv.URL + "/missing"}
		_, err := src.Rows(context.Background())
		var loadErr *guidedoc.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "fetch", loadErr.Stage)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "no such sheet")
	})

	t.Run("timeout", func(t *testing.T) {
		src := &HTTP{URL: srv.URL + "/slow", Timeout: 20 * time.Millisecond}
		_, err := src.Rows(context.Background())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("key", func(t *testing.T) {
		assert.Equal(t, srv.URL+"/utf8", (&HTTP{URL: srv.URL + "/utf8"}).Key())
	})
}
