// Copyright (c) 2025, The Biophys Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chanrec

import (
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// Table returns the rectangular trace as an etable.Table with Time (ms)
// and Current (pA) columns, ready for plotting.
func (tr *RectTrace) Table() *etable.Table {
	return traceTable("RectTrace", "idealized step-function single-channel current", tr.Time, tr.Current)
}

// Table returns the continuous trace as an etable.Table with Time (ms)
// and Current (pA) columns, ready for plotting.
func (tr *ContTrace) Table() *etable.Table {
	return traceTable("ContTrace", "kinetically shaped single-channel current", tr.Time, tr.Current)
}

func traceTable(name, desc string, tm, cur []float64) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", name)
	dt.SetMetaData("desc", desc)
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Current", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, len(tm))
	for i := range tm {
		dt.SetCellFloat("Time", i, tm[i])
		dt.SetCellFloat("Current", i, cur[i])
	}
	return dt
}
