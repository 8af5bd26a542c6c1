package msgfmt

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
)

const moMagic = 0x950412de

// WriteMO emits the catalog in the binary MO layout: 28 byte header, the
// original and translated (length, offset) tables, then the raw string
// content. The original table is sorted ascending by byte content, which
// readers rely on for binary search. Duplicate keys keep the last message.
// Output is little-endian, matching what GNU msgfmt produces on common
// hosts.
func (c *Catalog) WriteMO(w io.Writer) error {
	byKey := make(map[string]string, len(c.Messages))
	for _, m := range c.Messages {
		byKey[m.Key()] = m.Value()
	}
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	n := uint32(len(keys))
	const headerSize = 28
	origTabOffset := uint32(headerSize)
	transTabOffset := origTabOffset + 8*n
	dataOffset := transTabOffset + 8*n

	var data bytes.Buffer
	origTab := make([]uint32, 0, 2*n)
	transTab := make([]uint32, 0, 2*n)
	// Strings are written NUL terminated; the recorded length excludes
	// the terminator.
	addString := func(s string) (length, offset uint32) {
		offset = dataOffset + uint32(data.Len())
		data.WriteString(s)
		data.WriteByte(0)
		return uint32(len(s)), offset
	}
	for _, key := range keys {
		length, offset := addString(key)
		origTab = append(origTab, length, offset)
	}
	for _, key := range keys {
		length, offset := addString(byKey[key])
		transTab = append(transTab, length, offset)
	}

	var out bytes.Buffer
	header := []uint32{
		moMagic,
		0, // format revision
		n,
		origTabOffset,
		transTabOffset,
		0, // hash table size
		0, // hash table offset
	}
	binary.Write(&out, binary.LittleEndian, header)
	binary.Write(&out, binary.LittleEndian, origTab)
	binary.Write(&out, binary.LittleEndian, transTab)
	out.Write(data.Bytes())

	_, err := w.Write(out.Bytes())
	return err
}
