// Package gettext reads compiled binary message catalogs (the GNU MO
// format) and answers plain, plural and context-qualified translation
// lookups, in pure Go with Plural Forms support.
//
// Lookups never fail: a missing entry, an unreadable file or a corrupt
// catalog all return the caller's own message unchanged, so UI code can
// always display something.
//
// A catalog built with the default cached mode may be shared between
// goroutines once constructed. A catalog built with Options.NoCache keeps
// a read cursor on its byte source, so concurrent lookups need external
// locking; the same applies to sharing any catalog while its first plural
// lookup may still be compiling the plural rule.
package gettext

import (
	"fmt"
	"path"
	"sync"
)

// TextDomain holds the translations of one domain (application) across the
// locales found under a locale directory tree.
type TextDomain struct {
	// Name of the domain, conventionally the application name.
	Name string
	// LocaleDir is the root of the locale folder. If empty, the system
	// default is used.
	LocaleDir string
	// PathResolver resolves catalog paths. If nil, DefaultResolver is
	// used.
	PathResolver PathResolver
	// UseLangpacks also consults the Ubuntu language pack directory,
	// preferring its catalogs over LocaleDir's.
	UseLangpacks bool
	// CatalogOptions are forwarded to every catalog this domain loads.
	CatalogOptions *Options

	mu    sync.Mutex
	cache map[string]*moCatalog
}

// Translations is a deprecated alias for a TextDomain pointer.
type Translations = *TextDomain

// PathResolver resolves a path to a mo file
type PathResolver func(root string, locale string, domain string) string

// DefaultResolver resolves paths in the standard format of:
// <root>/<locale>/LC_MESSAGES/<domain>.mo
func DefaultResolver(root string, locale string, domain string) string {
	return path.Join(root, locale, "LC_MESSAGES", fmt.Sprintf("%s.mo", domain))
}

// NewTranslations creates a TextDomain for the given locale root, domain
// name and path resolver. Deprecated: construct a TextDomain directly.
func NewTranslations(root string, domain string, resolver PathResolver) *TextDomain {
	return &TextDomain{
		Name:         domain,
		LocaleDir:    root,
		PathResolver: resolver,
	}
}

const defaultLocaleDir = "/usr/share/locale"

func (t *TextDomain) candidatePaths(locale string) []string {
	resolver := t.PathResolver
	if resolver == nil {
		resolver = DefaultResolver
	}
	localeDir := t.LocaleDir
	if localeDir == "" {
		localeDir = defaultLocaleDir
	}
	var paths []string
	if t.UseLangpacks {
		paths = append(paths, resolver(langpackLocaleDir, locale, t.Name))
	}
	return append(paths, resolver(localeDir, locale, t.Name))
}

// load decodes the catalog for one locale, memoizing the result. Failures
// are memoized too (as nil), so a missing catalog costs one stat per
// process rather than one per lookup.
func (t *TextDomain) load(locale string) *moCatalog {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cache == nil {
		t.cache = map[string]*moCatalog{}
	}
	if catalog, ok := t.cache[locale]; ok {
		return catalog
	}

	t.cache[locale] = nil
	for _, path := range t.candidatePaths(locale) {
		src, err := openSource(path, t.CatalogOptions)
		if err != nil {
			continue
		}
		catalog, err := parseMO(src, t.CatalogOptions)
		if err != nil {
			src.Close()
			continue
		}
		t.cache[locale] = catalog
		return catalog
	}
	return nil
}

// Preload a list of locales (if they're available). This is useful if you
// want to limit IO to a specific time in your app, for example startup.
// Subsequent calls to Preload or Locale using a locale given here will not
// do any IO.
func (t *TextDomain) Preload(locales ...string) {
	for _, locale := range locales {
		t.load(locale)
	}
}

// Locale returns the catalog translations for a list of locales.
//
// If translations are not found in the first locale, each subsequent one
// is consulted until a match is found. If no match is found, the original
// strings are returned.
func (t *TextDomain) Locale(languages ...string) Catalog {
	var mos []*moCatalog
	for _, lang := range normalizeLanguages(languages) {
		if mo := t.load(lang); mo != nil {
			mos = append(mos, mo)
		}
	}
	return chainCatalog{mos}
}

// UserLocale returns the catalog translations for the user's locale.
func (t *TextDomain) UserLocale() Catalog {
	return t.Locale(UserLanguages()...)
}
