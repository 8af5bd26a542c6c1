package gettext

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
)

// indirection for tests
var osGetenv = os.Getenv

var langpackLocaleDir = "/usr/share/locale-langpack"
var localeAliasPath = "/usr/share/locale/locale.alias"

var (
	aliasOnce   sync.Once
	localeAlias map[string]string
)

// parseLocaleAlias reads a locale.alias style file: comment lines start
// with '#', data lines hold an alias and its expansion separated by white
// space. Lines with fewer than two fields are ignored.
func parseLocaleAlias(r io.Reader) (map[string]string, error) {
	aliases := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		aliases[fields[0]] = fields[1]
	}
	return aliases, scanner.Err()
}

func lookupAlias(locale string) string {
	aliasOnce.Do(func() {
		f, err := os.Open(localeAliasPath)
		if err != nil {
			return
		}
		defer f.Close()
		localeAlias, _ = parseLocaleAlias(f)
	})
	if alias, ok := localeAlias[locale]; ok {
		return alias
	}
	return locale
}

// normalizeCodeset lowercases a ".CODESET" suffix, drops punctuation, and
// names bare numeric charsets as ISO ones (".8859-1" becomes ".iso88591").
func normalizeCodeset(codeset string) string {
	var b strings.Builder
	onlyDigits := true
	for i := 1; i < len(codeset); i++ {
		c := codeset[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
			onlyDigits = false
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
			onlyDigits = false
		}
	}
	normalized := b.String()
	if onlyDigits && normalized != "" {
		normalized = "iso" + normalized
	}
	return "." + normalized
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}

// expandLocale generates the fallback candidates for one locale of the
// form language[_territory][.codeset][@modifier], most specific first:
// each combination of dropping the normalized/original codeset, the
// territory and finally the modifier.
func expandLocale(locale string) []string {
	var modifier string
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		modifier = locale[i:]
		locale = locale[:i]
	}
	var codeset string
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		codeset = locale[i:]
		locale = locale[:i]
	}
	var territory string
	if i := strings.IndexByte(locale, '_'); i >= 0 {
		territory = locale[i:]
		locale = locale[:i]
	}
	language := locale

	var codesets []string
	if codeset != "" {
		codesets = append(codesets, codeset)
		codesets = appendUnique(codesets, normalizeCodeset(codeset))
	}
	codesets = append(codesets, "")

	modifiers := []string{}
	if modifier != "" {
		modifiers = append(modifiers, modifier)
	}
	modifiers = append(modifiers, "")

	territories := []string{}
	if territory != "" {
		territories = append(territories, territory)
	}
	territories = append(territories, "")

	var out []string
	for _, mod := range modifiers {
		for _, terr := range territories {
			for _, cs := range codesets {
				out = appendUnique(out, language+terr+cs+mod)
			}
		}
	}
	return out
}

// UserLanguages returns the user's preferred locales, most preferred
// first, from the usual environment variables: LANGUAGE (colon separated
// list) wins over LC_ALL over LC_MESSAGES over LANG.
func UserLanguages() []string {
	if language := osGetenv("LANGUAGE"); language != "" {
		var langs []string
		for _, lang := range strings.Split(language, ":") {
			if lang != "" {
				langs = append(langs, lang)
			}
		}
		return langs
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := osGetenv(name); value != "" {
			return []string{value}
		}
	}
	return nil
}

// normalizeLanguages resolves aliases and expands each language into its
// fallback candidates, deduplicated in order. The "C" and "POSIX" locales
// mean "no translation", so they and everything after them are dropped.
func normalizeLanguages(languages []string) []string {
	var out []string
	for _, lang := range languages {
		lang = lookupAlias(lang)
		if lang == "C" || lang == "POSIX" {
			break
		}
		for _, expanded := range expandLocale(lang) {
			out = appendUnique(out, expanded)
		}
	}
	return out
}
