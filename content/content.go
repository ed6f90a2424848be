// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package content serves the course's static material: digital conference
handouts, the bibliography, and worked problems.  Everything is read
from JSON files under a single data directory:

	conferences/_index.json   topics, each with an ordered file list
	bibliography/index.json   books and papers (books.json/papers.json fallback)
	problems/<category>/*.json one problem per file

A missing file means an empty collection; a malformed one is an error.
*/
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// ErrNotFound is returned by ID lookups that match nothing.
var ErrNotFound = errors.New("content: not found")

// Repo reads course content from a data directory.
type Repo struct {
	Dir string `desc:"data directory root"`
}

func NewRepo(dir string) *Repo {
	return &Repo{Dir: dir}
}

// readJSON unmarshals the file at relpath into v.  A missing file
// returns ok = false with no error.
func (rp *Repo) readJSON(relpath string, v any) (ok bool, err error) {
	b, err := os.ReadFile(filepath.Join(rp.Dir, relpath))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("content: reading %s: %w", relpath, err)
	}
	if err = json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("content: parsing %s: %w", relpath, err)
	}
	return true, nil
}

// Conference is one digital conference handout, flattened from the
// topic-grouped index.
type Conference struct {
	ID          string `json:"id" desc:"unique identifier"`
	Title       string `json:"title" desc:"conference title"`
	Description string `json:"description" desc:"brief description"`
	Topic       string `json:"topic" desc:"topic or unit it belongs to"`
	Order       int    `json:"order" desc:"order within the topic"`
	TopicOrder  int    `json:"topic_order" desc:"order of the topic itself"`
	LocalPath   string `json:"local_path" desc:"relative path to the PDF"`
	Filename    string `json:"filename" desc:"PDF file name"`
}

// confIndex is the on-disk shape of conferences/_index.json.
type confIndex struct {
	Topics []struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Folder string `json:"folder"`
		Order  int    `json:"order"`
		Files  []struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Filename    string `json:"filename"`
		} `json:"files"`
	} `json:"topics"`
}

// Conferences returns all conferences as a flat list, with local paths
// built from each topic's folder.
func (rp *Repo) Conferences() ([]Conference, error) {
	var idx confIndex
	ok, err := rp.readJSON(filepath.Join("conferences", "_index.json"), &idx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var cfs []Conference
	for _, tp := range idx.Topics {
		title := tp.Title
		if title == "" {
			title = "General"
		}
		for i, fl := range tp.Files {
			cf := Conference{
				ID:          fl.ID,
				Title:       fl.Title,
				Description: fl.Description,
				Topic:       title,
				Order:       i + 1,
				TopicOrder:  tp.Order,
				Filename:    fl.Filename,
			}
			if cf.ID == "" {
				cf.ID = fmt.Sprintf("%s-%d", tp.ID, i)
			}
			if cf.Title == "" {
				cf.Title = fl.Filename
			}
			if fl.Filename != "" && tp.Folder != "" {
				cf.LocalPath = path.Join("conferences", "pdfs", tp.Folder, fl.Filename)
			}
			cfs = append(cfs, cf)
		}
	}
	return cfs, nil
}

// ConferencesByTopic returns the conferences under one topic title.
func (rp *Repo) ConferencesByTopic(topic string) ([]Conference, error) {
	cfs, err := rp.Conferences()
	if err != nil {
		return nil, err
	}
	var out []Conference
	for _, cf := range cfs {
		if cf.Topic == topic {
			out = append(out, cf)
		}
	}
	return out, nil
}

// ConferenceByID looks one conference up by its identifier.
func (rp *Repo) ConferenceByID(id string) (*Conference, error) {
	cfs, err := rp.Conferences()
	if err != nil {
		return nil, err
	}
	for i := range cfs {
		if cfs[i].ID == id {
			return &cfs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: conference %q", ErrNotFound, id)
}

// Topics returns the sorted unique topic titles.
func (rp *Repo) Topics() ([]string, error) {
	cfs, err := rp.Conferences()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var tps []string
	for _, cf := range cfs {
		if !seen[cf.Topic] {
			seen[cf.Topic] = true
			tps = append(tps, cf.Topic)
		}
	}
	sort.Strings(tps)
	return tps, nil
}
