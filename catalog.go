package gettext

import "runtime"

// Catalog answers translation lookups. Every operation returns a displayable
// string: a miss, a corrupt catalog or a bogus plural rule all degrade to
// the caller's own input rather than an error.
type Catalog interface {
	// Gettext returns the translation for msgid, or msgid itself when
	// the catalog has no entry for it.
	Gettext(msgid string) string
	// NGettext returns the plural form for n of the translation stored
	// under the msgid/msgidPlural pair. Without a matching entry it
	// falls back to msgid when n == 1 and msgidPlural otherwise.
	NGettext(msgid, msgidPlural string, n uint32) string
	// PGettext is Gettext restricted to a message context, falling back
	// to the bare msgid.
	PGettext(msgctxt, msgid string) string
	// NPGettext is NGettext restricted to a message context.
	NPGettext(msgctxt, msgid, msgidPlural string, n uint32) string
}

// Options configure how a catalog is read.
type Options struct {
	// NoCache disables the materialized key/value map. Lookups then
	// binary search the catalog's sorted original string table on every
	// call: slower, but memory use stays proportional to the tables
	// instead of the whole catalog.
	NoCache bool
	// Preload reads a file-backed catalog fully into memory at open and
	// serves all lookups from the buffer.
	Preload bool
}

// NewCatalog decodes a catalog from an in-memory byte sequence. A sequence
// that is not a well formed catalog yields the null catalog: every lookup
// passes its input through unchanged.
func NewCatalog(data []byte, opts *Options) Catalog {
	cat, err := parseMO(newMemSource(data), opts)
	if err != nil {
		return nullCatalog{}
	}
	return cat
}

// NewCatalogFromString is NewCatalog over the bytes of a string.
func NewCatalogFromString(data string, opts *Options) Catalog {
	return NewCatalog([]byte(data), opts)
}

// openSource opens the byte source for a catalog file as the options ask:
// preloaded into memory, or backed by the open file.
func openSource(path string, opts *Options) (byteSource, error) {
	if opts != nil && opts.Preload {
		return openPreloadedSource(path)
	}
	return openFileSource(path)
}

// OpenCatalog decodes a catalog from a file. An unreadable or malformed
// file yields the null catalog; no error is ever reported. A file-backed
// catalog holds its handle open until the catalog is garbage collected.
func OpenCatalog(path string, opts *Options) Catalog {
	src, err := openSource(path, opts)
	if err != nil {
		return nullCatalog{}
	}
	cat, err := parseMO(src, opts)
	if err != nil {
		src.Close()
		return nullCatalog{}
	}
	runtime.SetFinalizer(cat, func(c *moCatalog) {
		c.src.Close()
	})
	return cat
}

// nullCatalog is the short-circuit state for catalogs that failed to load.
type nullCatalog struct{}

func (nullCatalog) Gettext(msgid string) string {
	return msgid
}

func (nullCatalog) NGettext(msgid, msgidPlural string, n uint32) string {
	if n == 1 {
		return msgid
	}
	return msgidPlural
}

func (nullCatalog) PGettext(msgctxt, msgid string) string {
	return msgid
}

func (nullCatalog) NPGettext(msgctxt, msgid, msgidPlural string, n uint32) string {
	if n == 1 {
		return msgid
	}
	return msgidPlural
}

// chainCatalog consults a list of catalogs in order, for locale fallback
// chains like "en_AU", "en".
type chainCatalog struct {
	cats []*moCatalog
}

func (c chainCatalog) findMsg(key string, usePlural bool, n uint32) (string, bool) {
	for _, cat := range c.cats {
		if msgstr, ok := cat.findMsg(key, usePlural, n); ok {
			return msgstr, true
		}
	}
	return "", false
}

func (c chainCatalog) Gettext(msgid string) string {
	if msgstr, ok := c.findMsg(msgid, false, 0); ok {
		return msgstr
	}
	return msgid
}

func (c chainCatalog) NGettext(msgid, msgidPlural string, n uint32) string {
	if msgstr, ok := c.findMsg(msgid+"\x00"+msgidPlural, true, n); ok {
		return msgstr
	}
	if n == 1 {
		return msgid
	}
	return msgidPlural
}

func (c chainCatalog) PGettext(msgctxt, msgid string) string {
	if msgstr, ok := c.findMsg(msgctxt+"\x04"+msgid, false, 0); ok {
		return msgstr
	}
	return msgid
}

func (c chainCatalog) NPGettext(msgctxt, msgid, msgidPlural string, n uint32) string {
	if msgstr, ok := c.findMsg(msgctxt+"\x04"+msgid+"\x00"+msgidPlural, true, n); ok {
		return msgstr
	}
	if n == 1 {
		return msgid
	}
	return msgidPlural
}
