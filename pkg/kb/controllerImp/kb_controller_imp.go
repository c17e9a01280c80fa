package controllerImp

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"agrismart/pkg/apperr"
	"agrismart/pkg/kb/controller"
	"agrismart/pkg/kb/service"
)

type KBCtrl struct {
	s        service.KBService
	allow    map[string]bool
	maxBytes int
	httpc    *http.Client
}

var _ controller.KBController = (*KBCtrl)(nil)

type ingestReq struct {
	Title     string  `json:"title"`
	Tags      string  `json:"tags"`
	Text      string  `json:"text"`
	SourceURL *string `json:"source_url"`
}

type ingestURLReq struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Tags  string `json:"tags"`
}

// New builds the controller. allowed lists the hosts IngestURL may fetch.
func New(s service.KBService, allowed []string, maxBytes int) *KBCtrl {
	allow := map[string]bool{}
	for _, h := range allowed {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			allow[h] = true
		}
	}
	if maxBytes <= 0 {
		maxBytes = 1500000
	}
	return &KBCtrl{s: s, allow: allow, maxBytes: maxBytes, httpc: &http.Client{Timeout: 20 * time.Second}}
}

func (h *KBCtrl) IngestText(c echo.Context) error {
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	src := ""
	if req.SourceURL != nil {
		src = *req.SourceURL
	}
	doc, n, err := h.s.AddDocument(c.Request().Context(), req.Title, req.Tags, req.Text, src)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": n})
}

func (h *KBCtrl) IngestURL(c echo.Context) error {
	var req ingestURLReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url required"})
	}
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad url"})
	}
	if !h.allow[strings.ToLower(u.Host)] {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "domain not allowed"})
	}

	pg, err := fetchPage(c.Request().Context(), h.httpc, req.URL, h.maxBytes)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	text := pg.Text()
	if text == "" {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "page has no readable text"})
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = pg.Title
	}
	if title == "" {
		title = u.Host + u.Path
	}
	doc, n, err := h.s.AddDocument(c.Request().Context(), title, req.Tags, text, req.URL)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"doc": doc, "chunks": n})
}

func (h *KBCtrl) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "q required"})
	}
	k := 6
	if v := c.QueryParam("k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid k"})
		}
		k = n
	}
	hits, err := h.s.Search(c.Request().Context(), q, k)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, hits)
}
