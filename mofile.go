package gettext

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/localkush/gettext-lib/pluralforms"
)

const leMagic = 0x950412de
const beMagic = 0xde120495

// ErrNotACatalog is returned when a byte source does not start with either
// message catalog magic number.
var ErrNotACatalog = errors.New("not a message catalog")

// tableEntry addresses one raw string inside the byte source.
type tableEntry struct {
	length uint32
	offset uint32
}

// moCatalog is a decoded message catalog. The two offset tables are read
// eagerly at parse time; string content is read through the byte source on
// demand, or once into the cache map when caching is enabled.
type moCatalog struct {
	src   byteSource
	order binary.ByteOrder

	numStrings int
	origTab    []tableEntry
	transTab   []tableEntry

	noCache bool
	cache   map[string]string

	info map[string]string
	rule *pluralforms.Rule
}

// parseMO decodes the catalog header and offset tables from a byte source.
// The (length, offset) pairs are not validated here: each string read is
// bounds checked individually, so one corrupt entry only fails its own
// lookups.
func parseMO(src byteSource, opts *Options) (*moCatalog, error) {
	if err := src.seek(0); err != nil {
		return nil, err
	}
	magicBytes, err := src.readExact(4)
	if err != nil {
		return nil, err
	}

	var order binary.ByteOrder = binary.LittleEndian
	switch order.Uint32(magicBytes) {
	case leMagic:
		// nothing
	case beMagic:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: wrong magic %q", ErrNotACatalog, magicBytes)
	}

	head, err := src.readExact(16)
	if err != nil {
		return nil, err
	}
	// head[0:4] is the format revision; its presence is all we require.
	// The hash table size and offset words that follow are legacy and
	// never read.
	numStrings := order.Uint32(head[4:])
	origTabOffset := order.Uint32(head[8:])
	transTabOffset := order.Uint32(head[12:])

	if int64(numStrings)*16 > src.length() {
		return nil, fmt.Errorf("catalog claims %d strings but is only %d bytes", numStrings, src.length())
	}

	cat := &moCatalog{
		src:        src,
		order:      order,
		numStrings: int(numStrings),
		noCache:    opts != nil && opts.NoCache,
	}
	if cat.origTab, err = cat.readTable(origTabOffset); err != nil {
		return nil, err
	}
	if cat.transTab, err = cat.readTable(transTabOffset); err != nil {
		return nil, err
	}

	// Entry 0 with an empty key holds the catalog metadata.
	if cat.numStrings > 0 {
		if key, err := cat.readString(cat.origTab[0]); err == nil && len(key) == 0 {
			if value, err := cat.readString(cat.transTab[0]); err == nil {
				cat.readInfo(string(value))
			}
		}
	}
	return cat, nil
}

func (c *moCatalog) readTable(offset uint32) ([]tableEntry, error) {
	if err := c.src.seek(int64(offset)); err != nil {
		return nil, err
	}
	raw, err := c.src.readExact(8 * c.numStrings)
	if err != nil {
		return nil, err
	}
	table := make([]tableEntry, c.numStrings)
	for i := range table {
		table[i].length = c.order.Uint32(raw[8*i:])
		table[i].offset = c.order.Uint32(raw[8*i+4:])
	}
	return table, nil
}

func (c *moCatalog) readString(entry tableEntry) ([]byte, error) {
	if err := c.src.seek(int64(entry.offset)); err != nil {
		return nil, err
	}
	return c.src.readExact(int(entry.length))
}

// readInfo parses the metadata block of entry 0: "Key: value" lines with
// indented continuations, keys lowercased.
func (c *moCatalog) readInfo(info string) {
	c.info = make(map[string]string)
	lastk := ""
	for _, line := range strings.Split(info, "\n") {
		item := strings.TrimSpace(line)
		if len(item) == 0 {
			continue
		}
		if strings.Contains(item, ":") {
			tmp := strings.SplitN(item, ":", 2)
			k := strings.ToLower(strings.TrimSpace(tmp[0]))
			c.info[k] = strings.TrimSpace(tmp[1])
			lastk = k
		} else if len(lastk) != 0 {
			c.info[lastk] += "\n" + item
		}
	}
}

// pluralRule compiles the Plural-Forms declaration on first use and caches
// the result. Bogus or missing declarations fall back to the Germanic two
// form default rather than surfacing an error.
func (c *moCatalog) pluralRule() *pluralforms.Rule {
	if c.rule == nil {
		rule := pluralforms.DefaultRule()
		if decl, ok := c.info["plural-forms"]; ok {
			if parsed, err := pluralforms.ParseHeader(decl); err == nil {
				rule = parsed
			}
		}
		c.rule = rule
	}
	return c.rule
}

// materialize reads every entry into the cache map. Entries whose reads
// fail are skipped; the rest of the catalog stays usable.
func (c *moCatalog) materialize() {
	c.cache = make(map[string]string, c.numStrings)
	for i := 0; i < c.numStrings; i++ {
		key, err := c.readString(c.origTab[i])
		if err != nil {
			continue
		}
		value, err := c.readString(c.transTab[i])
		if err != nil {
			continue
		}
		c.cache[string(key)] = string(value)
	}
}

// lookup resolves a raw key (possibly a composite plural or context key)
// to its stored value.
func (c *moCatalog) lookup(key string) (string, bool) {
	if !c.noCache {
		if c.cache == nil {
			c.materialize()
		}
		value, ok := c.cache[key]
		return value, ok
	}
	return c.search(key)
}

// search binary searches the original string table, which the catalog
// producer sorts ascending by byte content. An unsorted table gives wrong
// or missing results, never unbounded work or out of range reads.
func (c *moCatalog) search(key string) (string, bool) {
	lo, hi := 0, c.numStrings
	for lo < hi {
		mid := lo + (hi-lo)/2
		candidate, err := c.readString(c.origTab[mid])
		if err != nil {
			return "", false
		}
		switch strings.Compare(key, string(candidate)) {
		case 0:
			value, err := c.readString(c.transTab[mid])
			if err != nil {
				return "", false
			}
			return string(value), true
		case -1:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return "", false
}

// findMsg resolves a key and, for plural lookups, picks the form the
// catalog's plural rule selects for n. Stored values hold their forms NUL
// separated; a rule index past the stored forms clamps to the last one.
func (c *moCatalog) findMsg(key string, usePlural bool, n uint32) (string, bool) {
	value, ok := c.lookup(key)
	if !ok {
		return "", false
	}
	if !usePlural {
		return value, true
	}
	forms := strings.Split(value, "\x00")
	idx := c.pluralRule().Select(n)
	if idx >= len(forms) {
		idx = len(forms) - 1
	}
	return forms[idx], true
}

func (c *moCatalog) Gettext(msgid string) string {
	if msgstr, ok := c.findMsg(msgid, false, 0); ok {
		return msgstr
	}
	// Fallback to original message
	return msgid
}

func (c *moCatalog) NGettext(msgid, msgidPlural string, n uint32) string {
	if msgstr, ok := c.findMsg(msgid+"\x00"+msgidPlural, true, n); ok {
		return msgstr
	}
	// Fallback to original message based on Germanic plural rule.
	if n == 1 {
		return msgid
	}
	return msgidPlural
}

func (c *moCatalog) PGettext(msgctxt, msgid string) string {
	if msgstr, ok := c.findMsg(msgctxt+"\x04"+msgid, false, 0); ok {
		return msgstr
	}
	return msgid
}

func (c *moCatalog) NPGettext(msgctxt, msgid, msgidPlural string, n uint32) string {
	if msgstr, ok := c.findMsg(msgctxt+"\x04"+msgid+"\x00"+msgidPlural, true, n); ok {
		return msgstr
	}
	// Fallback to original message based on Germanic plural rule.
	if n == 1 {
		return msgid
	}
	return msgidPlural
}
