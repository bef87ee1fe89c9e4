// Package views renders the embedded HTML pages and the datastar responses
// the pages talk to.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var tmpl = template.Must(template.New("tarefas").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Format("02/01/2006") },
}).ParseFS(templatesFS, "templates/*.html"))

// Static serves the stylesheet and scripts under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func Render(name string, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return b.String(), nil
}

// HTML writes a full page.
func HTML(c *gin.Context, status int, name string, data any) {
	html, err := Render(name, data)
	if err != nil {
		slog.Error("failed to render page", "template", name, "error", err)
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(html))
}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

type toastView struct {
	Kind    ToastKind
	Message string
}

// Toast replaces the #toast element with a transient notification.
func Toast(sse *datastar.ServerSentEventGenerator, kind ToastKind, message string) error {
	html, err := Render("toast", toastView{Kind: kind, Message: message})
	if err != nil {
		return err
	}
	return sse.PatchElements(html)
}

// Patch renders a partial and merges it into the page. Without a selector the
// element is matched by its id.
func Patch(sse *datastar.ServerSentEventGenerator, name string, data any, opts ...datastar.PatchElementOption) error {
	html, err := Render(name, data)
	if err != nil {
		return err
	}
	return sse.PatchElements(html, opts...)
}

// Remove deletes the elements matching selector.
func Remove(sse *datastar.ServerSentEventGenerator, selector string) error {
	return sse.PatchElements("", datastar.WithSelector(selector), datastar.WithMode(datastar.ElementPatchModeRemove))
}

// CopyToClipboard writes text to the visitor's clipboard.
func CopyToClipboard(sse *datastar.ServerSentEventGenerator, text string) error {
	return sse.ExecuteScript(fmt.Sprintf("navigator.clipboard.writeText(%q)", text))
}

// Redirect sends the browser to url from inside a datastar request.
func Redirect(sse *datastar.ServerSentEventGenerator, url string) error {
	return sse.ExecuteScript(fmt.Sprintf("window.location = %q", url))
}
