package server

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/Daskott/folio/contactform"
	"github.com/Daskott/folio/i18n"
	"github.com/Daskott/folio/site"
)

var (
	//go:embed templates/*.html
	templateFiles embed.FS

	//go:embed static
	staticFiles embed.FS
)

type pageRenderer struct {
	index *template.Template
}

type formView struct {
	Values      contactform.Submission
	FieldErrors map[string]string
	ErrorText   string
	Status      contactform.Status
}

func (fv formView) Sent() bool {
	return fv.Status == contactform.StatusSucceeded
}

type pageData struct {
	catalog     *i18n.Catalog
	Locale      string
	OtherLocale string
	Content     site.Content
	Form        formView
	Year        int
}

// T is the template's message lookup, e.g. {{.T "Hero.heading"}}
func (p pageData) T(key string, params ...string) string {
	return p.catalog.Text(key, params...)
}

func newPageRenderer() (*pageRenderer, error) {
	index, err := template.ParseFS(templateFiles, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &pageRenderer{index: index}, nil
}

// renderPage renders the site for the request's locale. A nil 'form' renders
// an idle, empty contact form.
// renderPage renders the page with the state of 'form'. 'serverFieldErrors'
// are per field messages from server side validation, shown inline next to
// the client side ones.
func (s *folioServer) renderPage(rw http.ResponseWriter, r *http.Request, form *contactform.Form, serverFieldErrors map[string]string, status int) {
	catalog := s.catalogFrom(r)

	view := formView{Status: contactform.StatusIdle, FieldErrors: map[string]string{}}
	if form != nil {
		view.Values = form.Values()
		view.ErrorText = form.ErrorText()
		view.Status = form.Status()
		for field, msg := range form.FieldErrors() {
			view.FieldErrors[string(field)] = msg
		}
	}
	for field, msg := range serverFieldErrors {
		if _, ok := view.FieldErrors[field]; !ok {
			view.FieldErrors[field] = msg
		}
	}

	otherLocale := i18n.English
	if catalog.Locale() == i18n.English {
		otherLocale = i18n.French
	}

	data := pageData{
		catalog:     catalog,
		Locale:      catalog.Locale(),
		OtherLocale: otherLocale,
		Content:     s.content,
		Form:        view,
		Year:        time.Now().Year(),
	}

	// Render to a buffer first so a template error still yields a clean 500
	buf := &bytes.Buffer{}
	if err := s.pages.index.Execute(buf, data); err != nil {
		logg.Errorf("renderPage: %v", err)
		http.Error(rw, catalog.Text("Errors.internal"), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	buf.WriteTo(rw)
}

func staticHandler() http.Handler {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logg.Fatal(err)
	}

	return http.StripPrefix("/static/", http.FileServer(http.FS(assets)))
}
