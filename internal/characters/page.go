package characters

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Page renders the full characters document.
func Page(vm ViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>")
		b.WriteString(templ.EscapeString(vm.DocumentTitle))
		b.WriteString("</title></head><body><main>")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := CharacterList(vm).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}

// CharacterList renders the heading, sort controls, count and names.
func CharacterList(vm ViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"characters\"><h2>")
		b.WriteString(templ.EscapeString(vm.Title))
		b.WriteString("</h2><form method=\"get\" action=\"/characters\" class=\"sort-controls\">")
		writeSelect(&b, "orderBy", "Order by", vm.OrderByOptions)
		writeSelect(&b, "order", "Order", vm.OrderOptions)
		b.WriteString("<button type=\"submit\">Sort</button></form><p class=\"count\">")
		b.WriteString(templ.EscapeString(vm.CountText))
		b.WriteString("</p><ul class=\"character-list\">")
		for _, c := range vm.Characters {
			b.WriteString("<li data-id=\"")
			b.WriteString(templ.EscapeString(c.ID))
			b.WriteString("\">")
			b.WriteString(templ.EscapeString(c.Name))
			b.WriteString("</li>")
		}
		b.WriteString("</ul></section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeSelect(b *strings.Builder, name, label string, options []SelectOption) {
	b.WriteString("<label>")
	b.WriteString(templ.EscapeString(label))
	b.WriteString(" <select name=\"")
	b.WriteString(templ.EscapeString(name))
	b.WriteString("\" data-testid=\"")
	b.WriteString(templ.EscapeString(name))
	b.WriteString("\" onchange=\"this.form.submit()\">")
	for _, opt := range options {
		b.WriteString("<option value=\"")
		b.WriteString(templ.EscapeString(opt.Value))
		b.WriteString("\"")
		if opt.Selected {
			b.WriteString(" selected")
		}
		b.WriteString(">")
		b.WriteString(templ.EscapeString(opt.Label))
		b.WriteString("</option>")
	}
	b.WriteString("</select></label>")
}
