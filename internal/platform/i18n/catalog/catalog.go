// Package catalog holds the embedded user-facing message catalogs and
// registers them with golang.org/x/text/message.
//
// Each file lives at locales/<locale>/<namespace>.yaml:
//
//	locale: en-US
//	namespace: cli
//	messages:
//	  cli.seed_set: "Seed set to: %s"
//
// Every locale must define exactly the keys of BaseLocale, so a lookup that
// resolves a locale never misses a key.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other locale is checked against and the
// fallback for unknown ones.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle maps locale to namespace to message key to text.
type Bundle struct {
	locales map[string]map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustLoad(embedded)

// Default returns the bundle built from the embedded catalogs. Its messages
// are registered with x/text on package initialization.
func Default() *Bundle {
	return defaultBundle
}

// Printer returns an x/text printer for locale. Unknown locales print in
// BaseLocale.
func (b *Bundle) Printer(locale string) *message.Printer {
	return message.NewPrinter(language.MustParse(b.resolve(locale)))
}

// NamespaceMessagesWithFallback returns a copy of one namespace and the
// locale that served it.
func (b *Bundle) NamespaceMessagesWithFallback(locale string, namespace string) (string, map[string]string) {
	resolved := b.resolve(locale)
	messages := b.locales[resolved][strings.TrimSpace(namespace)]
	out := make(map[string]string, len(messages))
	for key, value := range messages {
		out[key] = value
	}
	return resolved, out
}

func (b *Bundle) resolve(locale string) string {
	locale = strings.TrimSpace(locale)
	if _, ok := b.locales[locale]; ok {
		return locale
	}
	return BaseLocale
}

func mustLoad(catalogFS fs.FS) *Bundle {
	bundle, err := load(catalogFS)
	if err != nil {
		panic(err)
	}
	if err := bundle.register(); err != nil {
		panic(err)
	}
	return bundle
}

func load(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	bundle := &Bundle{locales: map[string]map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.add(p, file); err != nil {
			return nil, err
		}
	}
	if err := bundle.checkKeys(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if file.Locale != dirLocale {
		return fmt.Errorf("catalog %s: locale %q does not match directory %q", p, file.Locale, dirLocale)
	}
	if file.Namespace != fileNamespace {
		return fmt.Errorf("catalog %s: namespace %q does not match file name %q", p, file.Namespace, fileNamespace)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: no messages", p)
	}

	namespaces := b.locales[file.Locale]
	if namespaces == nil {
		namespaces = map[string]map[string]string{}
		b.locales[file.Locale] = namespaces
	}
	// Keys share one x/text registry per locale, so they must be unique
	// across namespaces.
	for key := range file.Messages {
		for ns, messages := range namespaces {
			if _, dup := messages[key]; dup {
				return fmt.Errorf("catalog %s: key %q already defined in namespace %q", p, key, ns)
			}
		}
	}
	namespaces[file.Namespace] = file.Messages
	return nil
}

func (b *Bundle) checkKeys() error {
	base, ok := b.locales[BaseLocale]
	if !ok {
		return fmt.Errorf("base locale %s has no catalogs", BaseLocale)
	}
	for locale, namespaces := range b.locales {
		if _, err := language.Parse(locale); err != nil {
			return fmt.Errorf("locale %q: %w", locale, err)
		}
		if locale == BaseLocale {
			continue
		}
		if missing := missingKeys(base, namespaces); len(missing) > 0 {
			return fmt.Errorf("locale %s is missing %s", locale, strings.Join(missing, ", "))
		}
		if extra := missingKeys(namespaces, base); len(extra) > 0 {
			return fmt.Errorf("locale %s defines unknown %s", locale, strings.Join(extra, ", "))
		}
	}
	return nil
}

// missingKeys lists namespace/key pairs present in want but absent in got.
func missingKeys(want, got map[string]map[string]string) []string {
	var out []string
	for ns, messages := range want {
		for key := range messages {
			if _, ok := got[ns][key]; !ok {
				out = append(out, ns+"/"+key)
			}
		}
	}
	sort.Strings(out)
	return out
}

func (b *Bundle) register() error {
	for locale, namespaces := range b.locales {
		tag := language.MustParse(locale)
		for _, messages := range namespaces {
			for key, value := range messages {
				if err := message.SetString(tag, key, value); err != nil {
					return fmt.Errorf("register %s/%s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}
