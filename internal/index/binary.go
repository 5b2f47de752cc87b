package index

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/orcaman/writerseeker"

	"github.com/melisekm/skwiki-search/internal/wiki"
)

// Tagged binary index format:
//
//	magic      "SKWI"
//	version    byte
//	docCount   uvarint
//	docs       docCount * doc record
//	termCount  uvarint
//	terms      termCount * term record
//
// A doc record is: doc_id (uvarint), title (uvarint-len-prefixed),
// term count (uvarint) followed by that many uvarint-len-prefixed
// terms in Page.Terms order, vector length (uvarint) followed by that
// many float64s (8 bytes each, big-endian bit pattern), a has-infobox
// byte, and if set an infobox record: name (uvarint-len-prefixed), key
// count (uvarint), then that many (key, value) uvarint-len-prefixed
// string pairs in Infobox.Keys order, each value taken from
// Infobox.Properties.
//
// A term record is: term (uvarint-len-prefixed), document frequency
// (uvarint), corpus frequency (uvarint), posting count (uvarint),
// posting block byte length (uvarint), then that many bytes holding
// posting count * (doc_id uvarint, term frequency uvarint). The byte
// length prefix lets a reader skip a term's postings without decoding
// them, and is itself only known once every posting has been
// assembled — so postings are built in an in-memory seekable buffer
// first, then copied into the real output once their length is known,
// rather than requiring two passes over the destination file.
const (
	magic         = "SKWI"
	formatVersion = 1
)

// Save writes idx in the tagged binary format to w. Terms and
// documents are written in sorted order so Save is deterministic
// regardless of map iteration order or how the index was built.
func Save(idx *InvertedIndex, w io.Writer) error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(magic); err != nil {
		return err
	}
	if err := bw.WriteByte(formatVersion); err != nil {
		return err
	}

	docIDs := make([]uint64, 0, len(idx.docs))
	for id := range idx.docs {
		docIDs = append(docIDs, id)
	}
	sort.Slice(docIDs, func(i, j int) bool { return docIDs[i] < docIDs[j] })

	if err := writeUvarint(bw, uint64(len(docIDs))); err != nil {
		return err
	}
	for _, id := range docIDs {
		if err := writeUvarint(bw, id); err != nil {
			return err
		}
		if err := writeDoc(bw, idx.docs[id]); err != nil {
			return err
		}
	}

	terms := make([]string, 0, len(idx.terms))
	for t := range idx.terms {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	if err := writeUvarint(bw, uint64(len(terms))); err != nil {
		return err
	}
	for _, term := range terms {
		entry := idx.terms[term]
		if err := writeString(bw, term); err != nil {
			return err
		}
		if err := writeUvarint(bw, uint64(entry.docFreq)); err != nil {
			return err
		}
		if err := writeUvarint(bw, entry.corpusFreq); err != nil {
			return err
		}

		var postingsBuf writerseeker.WriterSeeker
		for _, p := range entry.postings {
			if err := writeUvarint(&postingsBuf, p.DocID); err != nil {
				return err
			}
			if err := writeUvarint(&postingsBuf, uint64(p.TermFreq)); err != nil {
				return err
			}
		}
		r, err := postingsBuf.Reader()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}

		if err := writeUvarint(bw, uint64(len(entry.postings))); err != nil {
			return err
		}
		if err := writeUvarint(bw, uint64(len(data))); err != nil {
			return err
		}
		if _, err := bw.Write(data); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Load reads an index previously written by Save.
func Load(r io.Reader) (*InvertedIndex, error) {
	br := bufio.NewReader(r)

	gotMagic := make([]byte, len(magic))
	if _, err := io.ReadFull(br, gotMagic); err != nil {
		return nil, err
	}
	if string(gotMagic) != magic {
		return nil, fmt.Errorf("index: not a skwiki index file (bad magic %q)", gotMagic)
	}
	version, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, fmt.Errorf("index: unsupported format version %d", version)
	}

	idx := New()

	docCount, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < docCount; i++ {
		id, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, err
		}
		page, err := readDoc(br)
		if err != nil {
			return nil, err
		}
		page.DocID = id
		idx.docs[id] = page
	}

	termCount, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < termCount; i++ {
		term, err := readString(br)
		if err != nil {
			return nil, err
		}
		docFreq, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, err
		}
		corpusFreq, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, err
		}
		postingCount, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, err
		}
		byteLen, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, err
		}
		data := make([]byte, byteLen)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, err
		}

		postingsReader := bytes.NewReader(data)
		postings := make([]Posting, 0, postingCount)
		for j := uint64(0); j < postingCount; j++ {
			docID, err := binary.ReadUvarint(postingsReader)
			if err != nil {
				return nil, err
			}
			tf, err := binary.ReadUvarint(postingsReader)
			if err != nil {
				return nil, err
			}
			postings = append(postings, Posting{DocID: docID, TermFreq: uint32(tf)})
		}

		idx.terms[term] = &termEntry{
			docFreq:    uint32(docFreq),
			corpusFreq: corpusFreq,
			postings:   postings,
		}
	}

	return idx, nil
}

func writeDoc(w io.Writer, page *wiki.Page) error {
	if err := writeString(w, page.Title); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(len(page.Terms))); err != nil {
		return err
	}
	for _, t := range page.Terms {
		if err := writeString(w, t); err != nil {
			return err
		}
	}
	if err := writeUvarint(w, uint64(len(page.Vector))); err != nil {
		return err
	}
	for _, v := range page.Vector {
		if err := writeFloat64(w, v); err != nil {
			return err
		}
	}
	if page.Infobox == nil {
		_, err := w.Write([]byte{0})
		return err
	}
	if _, err := w.Write([]byte{1}); err != nil {
		return err
	}
	return writeInfobox(w, page.Infobox)
}

func writeInfobox(w io.Writer, ib *wiki.Infobox) error {
	if err := writeString(w, ib.Name); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(len(ib.Keys))); err != nil {
		return err
	}
	for _, k := range ib.Keys {
		if err := writeString(w, k); err != nil {
			return err
		}
		if err := writeString(w, ib.Properties[k]); err != nil {
			return err
		}
	}
	return nil
}

func readDoc(br *bufio.Reader) (*wiki.Page, error) {
	title, err := readString(br)
	if err != nil {
		return nil, err
	}
	termCount, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	terms := make([]string, 0, termCount)
	for i := uint64(0); i < termCount; i++ {
		t, err := readString(br)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	vecLen, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	var vector []float64
	if vecLen > 0 {
		vector = make([]float64, 0, vecLen)
		for i := uint64(0); i < vecLen; i++ {
			v, err := readFloat64(br)
			if err != nil {
				return nil, err
			}
			vector = append(vector, v)
		}
	}
	hasInfobox, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	var infobox *wiki.Infobox
	if hasInfobox != 0 {
		infobox, err = readInfobox(br)
		if err != nil {
			return nil, err
		}
	}
	return &wiki.Page{
		Title:   title,
		Terms:   terms,
		Vector:  vector,
		Infobox: infobox,
	}, nil
}

func readInfobox(br *bufio.Reader) (*wiki.Infobox, error) {
	name, err := readString(br)
	if err != nil {
		return nil, err
	}
	keyCount, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, keyCount)
	props := make(map[string]string, keyCount)
	for i := uint64(0); i < keyCount; i++ {
		k, err := readString(br)
		if err != nil {
			return nil, err
		}
		v, err := readString(br)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		props[k] = v
	}
	return &wiki.Infobox{Name: name, Keys: keys, Properties: props}, nil
}

func writeFloat64(w io.Writer, v float64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.Write(buf[:])
	return err
}

func readFloat64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), nil
}

func writeUvarint(w io.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

func writeString(w io.Writer, s string) error {
	if err := writeUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r *bufio.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
