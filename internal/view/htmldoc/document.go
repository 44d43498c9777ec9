// Package htmldoc is an in-memory page backed by goquery, used as the view.Document of terminal hosts.
package htmldoc

import (
	_ "embed"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/rocketscienceinc/checkers-client/internal/view"
)

//go:embed shell.html
var defaultShell string

const submitSelector = `button[type="submit"], input[type="submit"]`

// Document - a parsed page. All access goes through mu, so hosts may read it while a request completes.
type Document struct {
	mu  sync.RWMutex
	doc *goquery.Document
}

func New(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return &Document{doc: doc}, nil
}

// NewDefault - the built-in page with every element the controller expects.
func NewDefault() *Document {
	doc, err := New(strings.NewReader(defaultShell))
	if err != nil {
		panic(fmt.Errorf("embedded page shell is broken: %w", err))
	}

	return doc
}

// Open - loads the page shell at path, or the built-in one when path is empty.
func Open(path string) (*Document, error) {
	if path == "" {
		return NewDefault(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open page shell: %w", err)
	}
	defer f.Close()

	return New(f)
}

// Render - current page markup.
func (that *Document) Render() (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.doc.Html()
}

func (that *Document) Element(id string) (view.Element, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.find(id).Length() == 0 {
		return nil, false
	}

	return &element{doc: that, id: id}, true
}

func (that *Document) Form(id string) (view.Form, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.find(id).Filter("form").Length() == 0 {
		return nil, false
	}

	return &form{doc: that, id: id}, true
}

// find must be called with mu held.
func (that *Document) find(id string) *goquery.Selection {
	return that.doc.FindMatcher(goquery.Single(`[id="` + id + `"]`))
}

func (that *Document) read(id string, fn func(sel *goquery.Selection) string) string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return fn(that.find(id))
}

func (that *Document) write(id string, fn func(sel *goquery.Selection)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	fn(that.find(id))
}

type element struct {
	doc *Document
	id  string
}

func (that *element) InnerHTML() string {
	return that.doc.read(that.id, func(sel *goquery.Selection) string {
		markup, _ := sel.Html()
		return markup
	})
}

func (that *element) SetInnerHTML(markup string) {
	that.doc.write(that.id, func(sel *goquery.Selection) {
		sel.SetHtml(markup)
	})
}

func (that *element) Value() string {
	return that.doc.read(that.id, func(sel *goquery.Selection) string {
		return sel.AttrOr("value", "")
	})
}

func (that *element) SetValue(value string) {
	that.doc.write(that.id, func(sel *goquery.Selection) {
		sel.SetAttr("value", value)
	})
}

func (that *element) Text() string {
	return that.doc.read(that.id, func(sel *goquery.Selection) string {
		return sel.Text()
	})
}

func (that *element) SetText(text string) {
	that.doc.write(that.id, func(sel *goquery.Selection) {
		sel.SetText(text)
	})
}

func (that *element) Class() string {
	return that.doc.read(that.id, func(sel *goquery.Selection) string {
		return sel.AttrOr("class", "")
	})
}

func (that *element) SetClass(class string) {
	that.doc.write(that.id, func(sel *goquery.Selection) {
		sel.SetAttr("class", class)
	})
}

type form struct {
	doc *Document
	id  string
}

// Fields - successful controls of the form, the way a browser would serialize them.
func (that *form) Fields() url.Values {
	that.doc.mu.RLock()
	defer that.doc.mu.RUnlock()

	values := url.Values{}
	that.doc.find(that.id).Find("input, select, textarea").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr("name")
		if !ok || name == "" {
			return
		}
		if _, disabled := sel.Attr("disabled"); disabled {
			return
		}

		switch goquery.NodeName(sel) {
		case "textarea":
			values.Add(name, sel.Text())
		case "select":
			selected := sel.Find("option[selected]")
			if selected.Length() == 0 {
				selected = sel.Find("option").First()
			}
			selected.Each(func(_ int, opt *goquery.Selection) {
				values.Add(name, opt.AttrOr("value", opt.Text()))
			})
		default:
			switch strings.ToLower(sel.AttrOr("type", "text")) {
			case "submit", "button", "reset", "image", "file":
				return
			case "checkbox", "radio":
				if _, checked := sel.Attr("checked"); !checked {
					return
				}
				values.Add(name, sel.AttrOr("value", "on"))
			default:
				values.Add(name, sel.AttrOr("value", ""))
			}
		}
	})

	return values
}

func (that *form) SetField(name, value string) {
	that.doc.write(that.id, func(sel *goquery.Selection) {
		field := sel.FindMatcher(goquery.Single(`[name="` + name + `"]`))

		switch goquery.NodeName(field) {
		case "textarea":
			field.SetText(value)
		case "select":
			field.Find("option").Each(func(_ int, opt *goquery.Selection) {
				if opt.AttrOr("value", opt.Text()) == value {
					opt.SetAttr("selected", "")
				} else {
					opt.RemoveAttr("selected")
				}
			})
		default:
			field.SetAttr("value", value)
		}
	})
}

func (that *form) SubmitDisabled() bool {
	return that.doc.read(that.id, func(sel *goquery.Selection) string {
		if _, ok := sel.Find(submitSelector).First().Attr("disabled"); ok {
			return "disabled"
		}
		return ""
	}) != ""
}

func (that *form) SetSubmitDisabled(disabled bool) {
	that.doc.write(that.id, func(sel *goquery.Selection) {
		button := sel.Find(submitSelector).First()
		if disabled {
			button.SetAttr("disabled", "")
		} else {
			button.RemoveAttr("disabled")
		}
	})
}
