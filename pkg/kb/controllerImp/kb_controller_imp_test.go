package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrismart/database"
	kbRepoImp "agrismart/pkg/kb/repositoryImp"
	kbServiceImp "agrismart/pkg/kb/serviceImp"
)

const okraPage = `<html><head><title>Growing Okra</title></head>
<body><nav><li>Home</li></nav>
<article><h1>Okra basics</h1><p>Okra loves heat.</p><ul><li>Harvest pods young.</li></ul></article>
</body></html>`

func newEcho(t *testing.T, allowed ...string) *echo.Echo {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	h := New(kbServiceImp.New(kbRepoImp.New(db), nil), allowed, 0)
	e := echo.New()
	e.POST("/api/kb/ingest", h.IngestText)
	e.POST("/api/kb/ingest/url", h.IngestURL)
	e.GET("/api/kb/search", h.Search)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHTMLPage(t *testing.T) {
	pg, err := htmlPage([]byte(okraPage))
	require.NoError(t, err)
	assert.Equal(t, "Growing Okra", pg.Title)
	assert.Equal(t, "Okra basics\nOkra loves heat.\nHarvest pods young.", pg.Text())
	assert.NotContains(t, pg.Text(), "Home")
}

func TestHTMLPageSections(t *testing.T) {
	const doc = `<html><head>
<meta property="og:title" content="Garlic  guide">
<meta name="description" content="Planting and curing garlic.">
</head><body>
<header>Site menu</header>
<h2>Planting</h2>
<p>Plant cloves   in autumn,
pointy end up.</p>
<ul><li><p>Space 15 cm apart.</p></li></ul>
<aside>Subscribe!</aside>
<h2>Curing</h2>
<script>var x = 1;</script>
<p>Hang bulbs for three weeks.</p>
<p>Hang bulbs for three weeks.</p>
<h3>Empty heading</h3>
<footer>Copyright</footer>
</body></html>`

	pg, err := htmlPage([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "Garlic guide", pg.Title)
	assert.Equal(t, "Planting and curing garlic.\n\n"+
		"Planting\nPlant cloves in autumn, pointy end up.\nSpace 15 cm apart.\n\n"+
		"Curing\nHang bulbs for three weeks.", pg.Text())
	for _, junk := range []string{"Site menu", "Subscribe", "var x", "Copyright", "Empty heading"} {
		assert.NotContains(t, pg.Text(), junk)
	}
}

func TestHTMLPageTitleFromHeading(t *testing.T) {
	pg, err := htmlPage([]byte(`<body><main><h1>Seed saving</h1><p>Dry seeds fully.</p></main></body>`))
	require.NoError(t, err)
	assert.Equal(t, "Seed saving", pg.Title)
}

func TestPlainPage(t *testing.T) {
	pg := plainPage("\r\n  Crop rotation notes \r\n\r\nYear one: beans.\nYear two:   maize.\n\n\n")
	assert.Equal(t, "Crop rotation notes", pg.Title)
	assert.Equal(t, "Crop rotation notes\n\nYear one: beans.\nYear two: maize.", pg.Text())
	assert.Empty(t, plainPage(" \n\n ").Text())
}

func TestIngestTextAndSearch(t *testing.T) {
	e := newEcho(t)

	rec := do(e, http.MethodPost, "/api/kb/ingest", `{"title":"Compost","text":"Turn the compost pile weekly."}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/kb/search?q=compost", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hits []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, "Compost", hits[0]["doc_title"])

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/kb/search", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/kb/search?q=x&k=zero", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/api/kb/ingest", `{"title":"No text"}`).Code)
}

func TestIngestURL(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(okraPage))
	}))
	t.Cleanup(site.Close)
	u, err := url.Parse(site.URL)
	require.NoError(t, err)

	e := newEcho(t, u.Host)
	rec := do(e, http.MethodPost, "/api/kb/ingest/url", `{"url":"`+site.URL+`/okra","tags":"veg"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Doc struct {
			Title     string `json:"title"`
			SourceURL string `json:"source_url"`
		} `json:"doc"`
		Chunks int `json:"chunks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Growing Okra", out.Doc.Title)
	assert.Equal(t, site.URL+"/okra", out.Doc.SourceURL)
	assert.Equal(t, 1, out.Chunks)
}

func TestIngestURLRejectsUnlistedHost(t *testing.T) {
	e := newEcho(t, "extension.example.org")

	rec := do(e, http.MethodPost, "/api/kb/ingest/url", `{"url":"https://elsewhere.example.com/page"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodPost, "/api/kb/ingest/url", `{"url":"ftp://extension.example.org/x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/kb/ingest/url", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestURLWithoutText(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><nav><li>Home</li></nav><script>x()</script></body></html>`))
	}))
	t.Cleanup(site.Close)
	u, err := url.Parse(site.URL)
	require.NoError(t, err)

	e := newEcho(t, u.Host)
	rec := do(e, http.MethodPost, "/api/kb/ingest/url", `{"url":"`+site.URL+`/empty"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}
