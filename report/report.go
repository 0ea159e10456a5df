package report

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/dsp"
	"github.com/goodsheperd/shepherd/sequencer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.txt
var templates embed.FS

type (
	// Reporter renders snapshots as text using text/templates, with the
	// sprig functions and caption, which title cases its argument.
	Reporter struct {
		Template *template.Template
	}

	// Macros is the data given to the templates.
	Macros struct {
		Name        string
		State       string
		NudgeMode   string
		Columns     int
		Rows        []Row
		ActiveSteps int
		MutedRows   []int

		HasTransport bool
		Divisor      string
		Counter      int

		HasMelody    bool
		MelodyState  string
		MelodyGlyphs []string
		Switch       string
	}

	Row struct {
		Index     int
		Glyphs    []string // # active, . inactive, X and o under the cursor
		Position  int
		Increment int
		Muted     bool
	}
)

func funcMap() template.FuncMap {
	caser := cases.Title(language.English)
	m := sprig.TxtFuncMap()
	m["caption"] = caser.String
	return m
}

// New returns a reporter using the built-in templates.
func New() (*Reporter, error) {
	tmpl, err := template.New("base").Funcs(funcMap()).ParseFS(templates, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("could not parse the built-in templates: %v", err)
	}
	return &Reporter{Template: tmpl}, nil
}

// NewFromTemplates returns a reporter using every template in a directory.
// The template names are the file names.
func NewFromTemplates(templateDirectory string) (*Reporter, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := template.New("base").Funcs(funcMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on directory "%v": %v`, templateDirectory, err)
	}
	return &Reporter{Template: tmpl}, nil
}

// Grid renders the snapshot with the grid.txt template.
func (r *Reporter) Grid(name string, snap shepherd.Snapshot) (string, error) {
	return r.Execute("grid.txt", NewMacros(name, snap))
}

// Summary renders the snapshot with the summary.txt template.
func (r *Reporter) Summary(name string, snap shepherd.Snapshot) (string, error) {
	return r.Execute("summary.txt", NewMacros(name, snap))
}

func (r *Reporter) Execute(templateName string, data any) (string, error) {
	result := bytes.NewBufferString("")
	if err := r.Template.ExecuteTemplate(result, templateName, data); err != nil {
		return "", fmt.Errorf(`could not execute template "%v": %v`, templateName, err)
	}
	return result.String(), nil
}

// NewMacros restores the snapshot into a fresh sequencer, so that missing
// values get their defaults, and collects what the templates show.
func NewMacros(name string, snap shepherd.Snapshot) *Macros {
	seq := sequencer.New()
	seq.Restore(snap)
	m := &Macros{
		Name:      name,
		State:     runState(seq.Running),
		NudgeMode: seq.NudgeMode.String(),
		Columns:   shepherd.NumColumns,
	}
	for _, active := range seq.Grid {
		if active {
			m.ActiveSteps++
		}
	}
	for i, c := range seq.Rows {
		row := Row{Index: i, Position: c.Position, Increment: c.Increment, Muted: c.Muted}
		cursor := c.Column()
		for col, active := range seq.Grid.RowAt(i) {
			row.Glyphs = append(row.Glyphs, glyph(active, col == cursor))
		}
		if c.Muted {
			m.MutedRows = append(m.MutedRows, i)
		}
		m.Rows = append(m.Rows, row)
	}
	if index, ok := snap.Transport.DivisorIndex.Unpack(); ok {
		m.HasTransport = true
		m.Divisor = dsp.DivisorNames[dsp.ClampDivisor(index)]
		m.Counter, _ = snap.Transport.ClockCounter.Unpack()
	}
	if running, ok := snap.Melody.Running.Unpack(); ok || len(snap.Melody.Gates) > 0 {
		m.HasMelody = true
		m.MelodyState = runState(running || !ok)
		for _, g := range snap.Melody.Gates {
			on, _ := g.Unpack()
			m.MelodyGlyphs = append(m.MelodyGlyphs, glyph(on, false))
		}
		m.Switch = "A"
		if p, _ := snap.Melody.SwitchPosition.Unpack(); p == 1 {
			m.Switch = "B"
		}
	}
	return m
}

func runState(running bool) string {
	if running {
		return "running"
	}
	return "stopped"
}

func glyph(active, cursor bool) string {
	switch {
	case active && cursor:
		return "X"
	case cursor:
		return "o"
	case active:
		return "#"
	}
	return "."
}
