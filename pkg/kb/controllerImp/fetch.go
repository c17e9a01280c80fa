package controllerImp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxTitleRunes = 120

// page is the readable part of a fetched document, grouped by heading.
type page struct {
	Title    string
	Sections []section
}

type section struct {
	Heading string
	Lines   []string
}

// Text renders each section as its heading followed by its lines, with a
// blank line between sections. Chunking cuts on newlines, so a chunk starts
// at a line boundary and usually right after a heading.
func (p page) Text() string {
	var b strings.Builder
	for _, s := range p.Sections {
		if len(s.Lines) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if s.Heading != "" {
			b.WriteString(s.Heading)
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(s.Lines, "\n"))
	}
	return b.String()
}

// fetchPage downloads u and extracts its readable text.
// Only text/html and text/plain are accepted.
func fetchPage(ctx context.Context, client *http.Client, u string, maxBytes int) (page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return page{}, err
	}
	req.Header.Set("Accept", "text/html, text/plain;q=0.9")
	resp, err := client.Do(req)
	if err != nil {
		return page{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return page{}, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}
	if resp.ContentLength > int64(maxBytes) {
		return page{}, fmt.Errorf("page too large")
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return page{}, err
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "text/plain"):
		return plainPage(string(b)), nil
	case strings.Contains(ct, "text/html"):
		return htmlPage(b)
	default:
		return page{}, fmt.Errorf("unsupported content-type: %s", ct)
	}
}

// plainPage uses the first non-empty line as the title and every
// blank-line separated block as a section.
func plainPage(s string) page {
	var p page
	for _, block := range strings.Split(strings.ReplaceAll(s, "\r", ""), "\n\n") {
		var sec section
		for _, line := range strings.Split(block, "\n") {
			if line = squash(line); line != "" {
				sec.Lines = append(sec.Lines, line)
			}
		}
		if len(sec.Lines) == 0 {
			continue
		}
		if p.Title == "" {
			p.Title = cut(sec.Lines[0], maxTitleRunes)
		}
		p.Sections = append(p.Sections, sec)
	}
	return p
}

const dropSel = "script, style, noscript, nav, header, footer, aside, form, iframe"

// htmlPage reads the main or article element (the body when there is
// neither), minus navigation and page chrome. h1-h4 start a new section.
func htmlPage(b []byte) (page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return page{}, err
	}
	p := page{Title: pageTitle(doc)}

	root := doc.Find("main, article").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}
	root.Find(dropSel).Remove()

	cur := section{}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = squash(desc); desc != "" {
			cur.Lines = append(cur.Lines, desc)
		}
	}
	root.Find("h1, h2, h3, h4, p, li, blockquote, pre").Each(func(_ int, s *goquery.Selection) {
		// nested blocks are read through their outermost match
		if s.ParentsFiltered("p, li, blockquote, pre").Length() > 0 {
			return
		}
		text := squash(s.Text())
		if text == "" {
			return
		}
		switch goquery.NodeName(s) {
		case "h1", "h2", "h3", "h4":
			p.Sections = append(p.Sections, cur)
			cur = section{Heading: text}
		default:
			if n := len(cur.Lines); n > 0 && cur.Lines[n-1] == text {
				return
			}
			cur.Lines = append(cur.Lines, text)
		}
	})
	p.Sections = append(p.Sections, cur)

	if p.Title == "" {
		for _, s := range p.Sections {
			if s.Heading != "" {
				p.Title = cut(s.Heading, maxTitleRunes)
				break
			}
		}
	}
	return p, nil
}

func pageTitle(doc *goquery.Document) string {
	if t := squash(doc.Find("title").First().Text()); t != "" {
		return cut(t, maxTitleRunes)
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		return cut(squash(t), maxTitleRunes)
	}
	return ""
}

// squash collapses runs of whitespace to one space.
func squash(s string) string { return strings.Join(strings.Fields(s), " ") }

func cut(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
