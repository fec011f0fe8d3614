// Package i18n renders error codes as localized user messages from the
// "errors" catalog namespace.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	"github.com/louisbranch/seqgen/internal/platform/i18n/catalog"
)

const namespace = "errors"

type localeMessages struct {
	set  *template.Template
	text map[string]string
}

// cache holds one parsed localeMessages per resolved locale.
var cache sync.Map

// Format renders the message for code in locale, filling placeholders such
// as {{.Input}} from metadata. Unknown codes render as the code itself,
// absent metadata renders empty, and a message that is not a valid template
// renders verbatim.
func Format(locale string, code string, metadata map[string]string) string {
	messages := forLocale(locale)
	text, ok := messages.text[code]
	if !ok {
		return code
	}
	tmpl := messages.set.Lookup(code)
	if tmpl == nil {
		return text
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return text
	}
	return b.String()
}

func forLocale(locale string) *localeMessages {
	resolved, text := catalog.Default().NamespaceMessagesWithFallback(locale, namespace)
	if cached, ok := cache.Load(resolved); ok {
		return cached.(*localeMessages)
	}
	actual, _ := cache.LoadOrStore(resolved, parse(resolved, text))
	return actual.(*localeMessages)
}

func parse(name string, text map[string]string) *localeMessages {
	set := template.New(name).Option("missingkey=zero")
	for code, message := range text {
		// Each message gets its own scratch set so a failed parse leaves
		// nothing behind in the shared one.
		tmpl, err := template.New(code).Option("missingkey=zero").Parse(message)
		if err != nil {
			continue
		}
		if _, err := set.AddParseTree(code, tmpl.Tree); err != nil {
			continue
		}
	}
	return &localeMessages{set: set, text: text}
}
