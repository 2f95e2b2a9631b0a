// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comptable

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/safehtml/template"

	"github.com/rankstat/rankstat/internal/texttab"
)

// InstanceColumn is the name of the leading column of every table.
const InstanceColumn = "Instance"

// formats maps format names to table writers.
var formats = map[string]func(*Table, io.Writer) error{
	"csv":  (*Table).writeCSV,
	"text": (*Table).writeText,
	"html": (*Table).writeHTML,
}

// Write writes t to w in the named format.
func (t *Table) Write(w io.Writer, format string) error {
	f, ok := formats[format]
	if !ok {
		return fmt.Errorf("unknown format %q", format)
	}
	return f(t, w)
}

func (t *Table) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Write(append([]string{InstanceColumn}, t.Columns...))
	for _, r := range t.Rows {
		cw.Write(append([]string{r.Instance}, r.Cells...))
	}
	cw.Flush()
	return cw.Error()
}

func (t *Table) writeText(w io.Writer) error {
	var tab texttab.Table
	tab.Row().Cell(InstanceColumn)
	for _, c := range t.Columns {
		tab.Cell(c, texttab.Center)
	}
	for _, r := range t.Rows {
		tab.Row().Cell(r.Instance)
		for _, v := range r.Cells {
			tab.Cell(v, texttab.Right)
		}
	}
	return tab.Format(w)
}

var htmlTemplate = template.Must(template.New("comptable").Parse(`<table class='comptable'>
<tr><th>Instance{{range .Columns}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr><td>{{.Instance}}{{range .Cells}}<td>{{.}}{{end}}
{{end -}}
</table>
`))

func (t *Table) writeHTML(w io.Writer) error {
	return htmlTemplate.Execute(w, t)
}
