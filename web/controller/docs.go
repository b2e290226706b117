package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quipvid/config"
)

var docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Video Metadata Service</title>
  <style>
    body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
    code { background: #f2f2f2; padding: 0.1rem 0.3rem; border-radius: 3px; }
    td, th { text-align: left; padding: 0.3rem 0.8rem 0.3rem 0; vertical-align: top; }
  </style>
</head>
<body>
  <h1>Video Metadata Service <small>v` + config.GetVersion() + `</small></h1>
  <p>CRUD API for video records with automatic view counting.</p>
  <table>
    <tr><th>Method</th><th>Path</th><th>Description</th></tr>
    <tr><td>GET</td><td><code>/videos</code></td>
        <td>Paginated list. Query: <code>page</code> (&ge;1), <code>page_size</code> (1..100),
        <code>sort_by</code> (views | title | created_at).</td></tr>
    <tr><td>GET</td><td><code>/videos/search</code></td>
        <td>Case-insensitive search over title, name and script. Query:
        <code>q</code> (required), <code>page</code>, <code>page_size</code>.</td></tr>
    <tr><td>GET</td><td><code>/videos/{id}</code></td>
        <td>Fetch one record and increment its view counter.</td></tr>
    <tr><td>POST</td><td><code>/videos</code></td>
        <td>Create a record. Body requires <code>url</code>, <code>name</code>,
        <code>title</code>; returns 201.</td></tr>
    <tr><td>PUT</td><td><code>/videos/{id}</code></td>
        <td>Partial update; only supplied keys change, empty strings clear a field.</td></tr>
    <tr><td>DELETE</td><td><code>/videos/{id}</code></td>
        <td>Remove a record; returns 204.</td></tr>
  </table>
  <p>List responses use the envelope
  <code>{total, page, page_size, total_pages, videos}</code>.
  Errors use <code>{"detail": "..."}</code>.</p>
</body>
</html>
`

// DocsController serves the static API documentation page.
type DocsController struct{}

func NewDocsController(g *gin.RouterGroup) *DocsController {
	a := &DocsController{}
	g.GET("/docs", a.docs)
	return a
}

func (a *DocsController) docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsPage))
}
