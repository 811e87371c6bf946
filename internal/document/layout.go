// Package document renders report documents from declarative layouts: text
// fields and tables placed over a PDF template, and XLSX workbooks.
package document

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed layouts/*.yaml
var builtinLayouts embed.FS

// Layout names shipped with the service.
const (
	LayoutReportCard = "report_card"
	LayoutAccident   = "accident"
)

var LayoutNames = []string{LayoutReportCard, LayoutAccident}

// RGB is a color as three 0..255 components.
type RGB []int

func (c RGB) values() (int, int, int) {
	if len(c) != 3 {
		return 0, 0, 0
	}
	return c[0], c[1], c[2]
}

type Font struct {
	Family string  `yaml:"family" validate:"required"`
	Size   float64 `yaml:"size" validate:"gt=0"`
}

// Field is a single line of text. With Spacing > 0 each character goes in its
// own box, Spacing units apart.
type Field struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Size    float64 `yaml:"size"`
	Style   string  `yaml:"style" validate:"omitempty,oneof=B I BI U"`
	Spacing float64 `yaml:"spacing" validate:"gte=0"`
}

// Label is static text printed only when no template is used.
type Label struct {
	Text  string  `yaml:"text" validate:"required"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Size  float64 `yaml:"size"`
	Style string  `yaml:"style" validate:"omitempty,oneof=B I BI U"`
}

// Block is wrapped multi-line text.
type Block struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Size       float64 `yaml:"size"`
	LineHeight float64 `yaml:"line_height" validate:"gt=0"`
	Width      int     `yaml:"width" validate:"gte=0"`
}

type Column struct {
	Title string  `yaml:"title"`
	Width float64 `yaml:"width" validate:"gt=0"`
	Align string  `yaml:"align" validate:"omitempty,oneof=L C R"`
}

// Band is a colored strip above the table header spanning columns From..To.
type Band struct {
	Title string `yaml:"title"`
	From  int    `yaml:"from" validate:"gte=0"`
	To    int    `yaml:"to" validate:"gtefield=From"`
	Fill  RGB    `yaml:"fill" validate:"omitempty,len=3,dive,gte=0,lte=255"`
}

type TableLayout struct {
	X            float64  `yaml:"x"`
	Y            float64  `yaml:"y"`
	ContinueY    float64  `yaml:"continue_y"`
	BottomMargin float64  `yaml:"bottom_margin"`
	HeaderHeight float64  `yaml:"header_height" validate:"gt=0"`
	RowHeight    float64  `yaml:"row_height" validate:"gt=0"`
	BandHeight   float64  `yaml:"band_height" validate:"gte=0"`
	FontSize     float64  `yaml:"font_size" validate:"gt=0"`
	HeaderFill   RGB      `yaml:"header_fill" validate:"omitempty,len=3,dive,gte=0,lte=255"`
	HeaderText   RGB      `yaml:"header_text" validate:"omitempty,len=3,dive,gte=0,lte=255"`
	Shade        RGB      `yaml:"shade" validate:"omitempty,len=3,dive,gte=0,lte=255"`
	Columns      []Column `yaml:"columns" validate:"required,min=1,dive"`
	Bands        []Band   `yaml:"bands" validate:"dive"`
}

// Width is the summed width of columns from..to inclusive.
func (t *TableLayout) Width(from, to int) float64 {
	w := 0.0
	for i := from; i <= to && i < len(t.Columns); i++ {
		w += t.Columns[i].Width
	}
	return w
}

// ColumnX is the left edge of column i.
func (t *TableLayout) ColumnX(i int) float64 {
	return t.X + t.Width(0, i-1)
}

type Layout struct {
	Name        string           `yaml:"name" validate:"required"`
	Unit        string           `yaml:"unit" validate:"oneof=pt mm cm in"`
	Page        string           `yaml:"page" validate:"required"`
	Orientation string           `yaml:"orientation" validate:"oneof=P L"`
	Font        Font             `yaml:"font"`
	Fields      map[string]Field `yaml:"fields" validate:"dive"`
	Labels      []Label          `yaml:"labels" validate:"dive"`
	Blocks      map[string]Block `yaml:"blocks" validate:"dive"`
	Table       *TableLayout     `yaml:"table"`
}

var validate = validator.New()

// ParseLayout decodes and checks a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if err := validate.Struct(&l); err != nil {
		return nil, fmt.Errorf("layout %q: %w", l.Name, err)
	}
	if l.Table != nil {
		for _, b := range l.Table.Bands {
			if b.To >= len(l.Table.Columns) {
				return nil, fmt.Errorf("layout %q: band %q ends at column %d of %d", l.Name, b.Title, b.To, len(l.Table.Columns))
			}
		}
		if l.Table.ContinueY == 0 {
			l.Table.ContinueY = l.Table.Y
		}
	}
	return &l, nil
}

// LoadLayout reads name.yaml from dir, falling back to the built-in layout
// when dir is empty or has no such file.
func LoadLayout(dir, name string) (*Layout, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name+".yaml"))
		switch {
		case err == nil:
			return ParseLayout(data)
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}
	data, err := builtinLayouts.ReadFile("layouts/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown layout %q: %w", name, err)
	}
	return ParseLayout(data)
}

// Registry holds the active layouts and swaps them on reload.
type Registry struct {
	mu      sync.RWMutex
	layouts map[string]*Layout
}

func NewRegistry(dir string) (*Registry, error) {
	r := &Registry{}
	if err := r.Reload(dir); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload loads every layout from dir. On error the previous set stays active.
func (r *Registry) Reload(dir string) error {
	layouts := make(map[string]*Layout, len(LayoutNames))
	for _, name := range LayoutNames {
		l, err := LoadLayout(dir, name)
		if err != nil {
			return err
		}
		layouts[name] = l
	}
	r.mu.Lock()
	r.layouts = layouts
	r.mu.Unlock()
	return nil
}

func (r *Registry) Get(name string) (*Layout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.layouts[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout %q", name)
	}
	return l, nil
}
