// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package content

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/goki/ki/kit"
	"github.com/google/uuid"
)

// BibKind is the kind of bibliography entry.
type BibKind int

//go:generate stringer -type=BibKind

var KiT_BibKind = kit.Enums.AddEnum(BibKindN, kit.NotBitFlag, nil)

const (
	// Book is a textbook.
	Book BibKind = iota

	// Paper is a journal article.
	Paper

	// Resource is any other reference material.
	Resource

	BibKindN
)

// On the wire the kind is a lowercase string ("book", "paper", "resource").

func (bk BibKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strings.ToLower(bk.String()) + `"`), nil
}

func (bk *BibKind) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	for k := Book; k < BibKindN; k++ {
		if strings.EqualFold(k.String(), s) {
			*bk = k
			return nil
		}
	}
	return fmt.Errorf("content: unknown bibliography kind %q", s)
}

// Chapter is one relevant chapter of a book.
type Chapter struct {
	Number int    `json:"number" desc:"chapter number"`
	Title  string `json:"title" desc:"chapter title"`
}

// BibEntry is one bibliography entry.  Book and paper specific fields
// are left empty for the kinds they do not apply to.
type BibEntry struct {
	ID        string   `json:"id" desc:"unique identifier"`
	Title     string   `json:"title" desc:"title"`
	Authors   []string `json:"authors" desc:"authors"`
	Year      int      `json:"year" desc:"publication year"`
	Kind      BibKind  `json:"type" desc:"entry kind"`
	LocalPath string   `json:"local_path,omitempty" desc:"relative path to the PDF"`
	URL       string   `json:"url,omitempty" desc:"external URL if available"`
	Filename  string   `json:"filename,omitempty" desc:"PDF file name"`
	Topics    []string `json:"topics,omitempty" desc:"related topics"`
	Notes     string   `json:"notes,omitempty" desc:"notes"`
	Primary   bool     `json:"is_primary,omitempty" desc:"primary course reference"`

	// book fields
	Edition   string    `json:"edition,omitempty" desc:"edition"`
	Publisher string    `json:"publisher,omitempty" desc:"publisher"`
	ISBN      string    `json:"isbn,omitempty" desc:"ISBN"`
	Chapters  []Chapter `json:"chapters_relevant,omitempty" desc:"chapters relevant to the course"`

	// paper fields
	Journal string `json:"journal,omitempty" desc:"journal"`
	Volume  string `json:"volume,omitempty" desc:"volume"`
	Pages   string `json:"pages,omitempty" desc:"pages"`
	DOI     string `json:"doi,omitempty" desc:"DOI"`
}

// bibIndex is the on-disk shape of bibliography/index.json and of the
// single-kind fallback files.
type bibIndex struct {
	Books  []BibEntry `json:"books"`
	Papers []BibEntry `json:"papers"`
}

// fill derives the local path from the file name and assigns an ID to
// entries that are missing one.
func fillBib(es []BibEntry, kind BibKind) {
	for i := range es {
		es[i].Kind = kind
		if es[i].Filename != "" {
			es[i].LocalPath = path.Join("bibliography", "pdfs", es[i].Filename)
		}
		if es[i].ID == "" {
			es[i].ID = uuid.NewString()
		}
	}
}

// Books returns all books, preferring the combined index.json and
// falling back to books.json.
func (rp *Repo) Books() ([]BibEntry, error) {
	var idx bibIndex
	ok, err := rp.readJSON(filepath.Join("bibliography", "index.json"), &idx)
	if err != nil {
		return nil, err
	}
	if !ok || idx.Books == nil {
		idx.Books = nil
		if _, err = rp.readJSON(filepath.Join("bibliography", "books.json"), &idx); err != nil {
			return nil, err
		}
	}
	fillBib(idx.Books, Book)
	return idx.Books, nil
}

// Papers returns all papers, preferring the combined index.json and
// falling back to papers.json.
func (rp *Repo) Papers() ([]BibEntry, error) {
	var idx bibIndex
	ok, err := rp.readJSON(filepath.Join("bibliography", "index.json"), &idx)
	if err != nil {
		return nil, err
	}
	if !ok || idx.Papers == nil {
		idx.Papers = nil
		if _, err = rp.readJSON(filepath.Join("bibliography", "papers.json"), &idx); err != nil {
			return nil, err
		}
	}
	fillBib(idx.Papers, Paper)
	return idx.Papers, nil
}

// Bibliography returns the whole bibliography, books first.
func (rp *Repo) Bibliography() ([]BibEntry, error) {
	bks, err := rp.Books()
	if err != nil {
		return nil, err
	}
	pps, err := rp.Papers()
	if err != nil {
		return nil, err
	}
	return append(bks, pps...), nil
}

// BibByID looks one entry up by its identifier.
func (rp *Repo) BibByID(id string) (*BibEntry, error) {
	es, err := rp.Bibliography()
	if err != nil {
		return nil, err
	}
	for i := range es {
		if es[i].ID == id {
			return &es[i], nil
		}
	}
	return nil, fmt.Errorf("%w: bibliography entry %q", ErrNotFound, id)
}

// BibByTopic returns the entries tagged with the given topic.
func (rp *Repo) BibByTopic(topic string) ([]BibEntry, error) {
	es, err := rp.Bibliography()
	if err != nil {
		return nil, err
	}
	var out []BibEntry
	for _, e := range es {
		for _, tp := range e.Topics {
			if tp == topic {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// PrimaryRefs returns the entries marked as primary course references.
func (rp *Repo) PrimaryRefs() ([]BibEntry, error) {
	es, err := rp.Bibliography()
	if err != nil {
		return nil, err
	}
	var out []BibEntry
	for _, e := range es {
		if e.Primary {
			out = append(out, e)
		}
	}
	return out, nil
}
