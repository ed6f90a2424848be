// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProblemStep is one step of a worked solution.
type ProblemStep struct {
	StepNumber  int            `json:"step_number" desc:"step number"`
	Description string         `json:"description" desc:"what the step does"`
	Formula     string         `json:"formula,omitempty" desc:"formula applied (LaTeX)"`
	Calculation string         `json:"calculation,omitempty" desc:"calculation performed"`
	Result      map[string]any `json:"result,omitempty" desc:"step result"`
	Explanation string         `json:"explanation,omitempty" desc:"additional explanation"`
}

// ProblemSolution is a complete worked solution.
type ProblemSolution struct {
	Steps          []ProblemStep  `json:"steps" desc:"solution steps"`
	FinalAnswer    map[string]any `json:"final_answer" desc:"final answer"`
	Interpretation string         `json:"interpretation,omitempty" desc:"interpretation of the result"`
	Tips           []string       `json:"tips,omitempty" desc:"additional tips"`
}

// Problem is one exercise, optionally with its worked solution and a
// link to the interactive solver that handles it.
type Problem struct {
	ID            string           `json:"id" desc:"unique identifier"`
	Title         string           `json:"title" desc:"problem title"`
	Category      string           `json:"category" desc:"main category"`
	Subcategory   string           `json:"subcategory,omitempty" desc:"subcategory"`
	Difficulty    int              `json:"difficulty" desc:"difficulty 1 (easiest) to 5"`
	Tags          []string         `json:"tags,omitempty" desc:"tags"`
	Statement     string           `json:"statement" desc:"problem statement"`
	GivenData     map[string]any   `json:"given_data,omitempty" desc:"data given in the statement"`
	Solution      *ProblemSolution `json:"solution,omitempty" desc:"worked solution"`
	RelatedSolver string           `json:"related_solver,omitempty" desc:"interactive solver that handles this problem"`
	SolverParams  map[string]any   `json:"solver_params,omitempty" desc:"preset solver parameters"`
	References    []string         `json:"references,omitempty" desc:"bibliography entry IDs"`
}

// Problems returns every problem, walking the per-category directories
// under problems/.  Names starting with an underscore are skipped.
func (rp *Repo) Problems() ([]Problem, error) {
	cats, err := rp.Categories()
	if err != nil {
		return nil, err
	}
	var pbs []Problem
	for _, cat := range cats {
		cps, err := rp.ProblemsByCategory(cat)
		if err != nil {
			return nil, err
		}
		pbs = append(pbs, cps...)
	}
	return pbs, nil
}

// ProblemsByCategory returns the problems in one category directory.
func (rp *Repo) ProblemsByCategory(category string) ([]Problem, error) {
	dir := filepath.Join(rp.Dir, "problems", category)
	ents, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: reading problems/%s: %w", category, err)
	}
	var pbs []Problem
	for _, ent := range ents {
		nm := ent.Name()
		if ent.IsDir() || strings.HasPrefix(nm, "_") || !strings.HasSuffix(nm, ".json") {
			continue
		}
		var pb Problem
		if _, err := rp.readJSON(filepath.Join("problems", category, nm), &pb); err != nil {
			return nil, err
		}
		pbs = append(pbs, pb)
	}
	return pbs, nil
}

// ProblemByID looks one problem up by its identifier.
func (rp *Repo) ProblemByID(id string) (*Problem, error) {
	pbs, err := rp.Problems()
	if err != nil {
		return nil, err
	}
	for i := range pbs {
		if pbs[i].ID == id {
			return &pbs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: problem %q", ErrNotFound, id)
}

// ProblemsByDifficulty returns the problems at one difficulty level.
func (rp *Repo) ProblemsByDifficulty(difficulty int) ([]Problem, error) {
	pbs, err := rp.Problems()
	if err != nil {
		return nil, err
	}
	var out []Problem
	for _, pb := range pbs {
		if pb.Difficulty == difficulty {
			out = append(out, pb)
		}
	}
	return out, nil
}

// ProblemsBySolver returns the problems linked to one interactive solver.
func (rp *Repo) ProblemsBySolver(solver string) ([]Problem, error) {
	pbs, err := rp.Problems()
	if err != nil {
		return nil, err
	}
	var out []Problem
	for _, pb := range pbs {
		if pb.RelatedSolver == solver {
			out = append(out, pb)
		}
	}
	return out, nil
}

// Categories returns the sorted problem category directory names.
func (rp *Repo) Categories() ([]string, error) {
	ents, err := os.ReadDir(filepath.Join(rp.Dir, "problems"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: reading problems dir: %w", err)
	}
	var cats []string
	for _, ent := range ents {
		if ent.IsDir() && !strings.HasPrefix(ent.Name(), "_") {
			cats = append(cats, ent.Name())
		}
	}
	sort.Strings(cats)
	return cats, nil
}
