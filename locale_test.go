package gettext

import (
	"strings"
	"testing"
)

func TestParseLocaleAlias(t *testing.T) {
	aliases, err := parseLocaleAlias(strings.NewReader(`
# alias		expansion
    # indented comment
bokmal		nb_NO.ISO-8859-1
catalan		ca_ES.ISO-8859-1
stray-single-field
`))
	if err != nil {
		t.Fatal(err)
	}
	assertDeepEqual(t, aliases, map[string]string{
		"bokmal":  "nb_NO.ISO-8859-1",
		"catalan": "ca_ES.ISO-8859-1",
	})
}

func TestNormalizeCodeset(t *testing.T) {
	for _, test := range []struct {
		codeset, normalized string
	}{
		{".UTF-8", ".utf8"},
		{".utf8", ".utf8"},
		{".ISO-8859-1", ".iso88591"},
		{".iso-8859-1", ".iso88591"},
		{".iso88591", ".iso88591"},
		// purely numeric charsets are named as ISO ones
		{".8859-1", ".iso88591"},
		{".88591", ".iso88591"},
	} {
		assert_equal(t, normalizeCodeset(test.codeset), test.normalized)
	}
}

func TestExpandLocale(t *testing.T) {
	for _, test := range []struct {
		locale   string
		expanded []string
	}{
		{"en", []string{"en"}},
		{"en_AU", []string{"en_AU", "en"}},
		{"en_AU.utf8", []string{"en_AU.utf8", "en_AU", "en.utf8", "en"}},
		{"en_AU.UTF-8", []string{
			"en_AU.UTF-8", "en_AU.utf8", "en_AU",
			"en.UTF-8", "en.utf8", "en",
		}},
		// the modifier is dropped last
		{"en_AU.UTF-8@mod", []string{
			"en_AU.UTF-8@mod", "en_AU.utf8@mod", "en_AU@mod",
			"en.UTF-8@mod", "en.utf8@mod", "en@mod",
			"en_AU.UTF-8", "en_AU.utf8", "en_AU",
			"en.UTF-8", "en.utf8", "en",
		}},
	} {
		assertDeepEqual(t, expandLocale(test.locale), test.expanded)
	}
}

func mockGetenv(env map[string]string) (restore func()) {
	old := osGetenv
	osGetenv = func(name string) string {
		return env[name]
	}
	return func() {
		osGetenv = old
	}
}

func mockLocaleAliases(aliases map[string]string) (restore func()) {
	// make sure the system alias file is not consulted underneath us
	aliasOnce.Do(func() {})
	old := localeAlias
	localeAlias = aliases
	return func() {
		localeAlias = old
	}
}

func TestUserLanguages(t *testing.T) {
	env := map[string]string{}
	restore := mockGetenv(env)
	defer restore()

	// By default, no locale is set
	assertDeepEqual(t, UserLanguages(), []string(nil))

	// If LANG is set, use that
	env["LANG"] = "en_AU@lang"
	assertDeepEqual(t, UserLanguages(), []string{"en_AU@lang"})

	// LC_MESSAGES overrides LANG
	env["LC_MESSAGES"] = "en_AU@messages"
	assertDeepEqual(t, UserLanguages(), []string{"en_AU@messages"})

	// LC_ALL overrides LC_MESSAGES
	env["LC_ALL"] = "en_AU.UTF-8"
	assertDeepEqual(t, UserLanguages(), []string{"en_AU.UTF-8"})

	// LANGUAGE overrides LC_ALL, and can specify multiple locales
	env["LANGUAGE"] = "en_AU:en_GB:en"
	assertDeepEqual(t, UserLanguages(), []string{"en_AU", "en_GB", "en"})
}

func TestNormalizeLanguages(t *testing.T) {
	restore := mockLocaleAliases(nil)
	defer restore()

	// Each language expands to its fallbacks, deduplicated in order;
	// "C" means "no translation" and ends the list.
	assertDeepEqual(t,
		normalizeLanguages([]string{"en_AU", "en_GB", "en", "C", "fr"}),
		[]string{"en_AU", "en", "en_GB"})
	assertDeepEqual(t,
		normalizeLanguages([]string{"POSIX", "en"}),
		[]string(nil))
}

func TestNormalizeLanguagesAliases(t *testing.T) {
	restore := mockLocaleAliases(map[string]string{
		"catalan": "ca_ES.ISO-8859-1",
	})
	defer restore()

	// An aliased name is resolved before expansion
	assertDeepEqual(t, normalizeLanguages([]string{"catalan"}), []string{
		"ca_ES.ISO-8859-1", "ca_ES.iso88591", "ca_ES",
		"ca.ISO-8859-1", "ca.iso88591", "ca",
	})
	// Unknown names pass through untouched
	assertDeepEqual(t, normalizeLanguages([]string{"ja"}), []string{"ja"})
}
