package document

import (
	"bytes"
	"fmt"
	"io"

	"school_reports_backend/internal/util"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// Content is what gets written on a layout. Keys of Fields and Blocks match
// the layout; keys the layout does not declare are ignored.
type Content struct {
	Fields map[string]string
	Blocks map[string]string
	Rows   [][]string
}

// Compose renders content over the first page of template (a PDF) and
// returns the PDF bytes. A nil template renders on a blank page with the
// layout's fallback labels. Layouts with a table refuse empty Rows with
// util.ErrNoData before anything is drawn.
func Compose(layout *Layout, template []byte, content Content) ([]byte, error) {
	c, err := render(layout, template, content)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", layout.Name, err)
	}
	return buf.Bytes(), nil
}

func render(layout *Layout, template []byte, content Content) (*composer, error) {
	if layout.Table != nil && len(content.Rows) == 0 {
		return nil, util.ErrNoData
	}

	pdf := fpdf.New(layout.Orientation, layout.Unit, layout.Page, "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	c := &composer{pdf: pdf, layout: layout, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.AddPage()
	if template != nil {
		if err := c.background(template); err != nil {
			return nil, err
		}
	} else {
		c.labels()
	}

	c.fields(content.Fields)
	c.blocks(content.Blocks)
	if layout.Table != nil {
		c.table(content.Rows)
	}
	return c, nil
}

// CheckTemplate reports whether template can be imported as a page
// background. Failures wrap util.ErrTemplate.
func CheckTemplate(template []byte) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	c := &composer{pdf: pdf}
	return c.background(template)
}

type headerMark struct {
	page int
	y    float64
}

type composer struct {
	pdf     *fpdf.Fpdf
	layout  *Layout
	tr      func(string) string
	headers []headerMark
}

// background imports page 1 of the template. The importer panics on
// malformed input, so that is turned into util.ErrTemplate.
func (c *composer) background(template []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", util.ErrTemplate, r)
		}
	}()

	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(template))
	tpl := imp.ImportPageFromStream(c.pdf, &rs, 1, "/MediaBox")
	w, h := c.pdf.GetPageSize()
	imp.UseImportedTemplate(c.pdf, tpl, 0, 0, w, h)
	if c.pdf.Err() {
		return fmt.Errorf("%w: %v", util.ErrTemplate, c.pdf.Error())
	}
	return nil
}

func (c *composer) font(size float64, style string) {
	if size <= 0 {
		size = c.layout.Font.Size
	}
	c.pdf.SetFont(c.layout.Font.Family, style, size)
}

func (c *composer) labels() {
	for _, l := range c.layout.Labels {
		c.font(l.Size, l.Style)
		c.pdf.Text(l.X, l.Y, c.tr(l.Text))
	}
}

func (c *composer) fields(values map[string]string) {
	for name, f := range c.layout.Fields {
		v, ok := values[name]
		if !ok || v == "" {
			continue
		}
		c.font(f.Size, f.Style)
		if f.Spacing <= 0 {
			c.pdf.Text(f.X, f.Y, c.tr(v))
			continue
		}
		for i, r := range []rune(v) {
			c.pdf.Text(f.X+float64(i)*f.Spacing, f.Y, c.tr(string(r)))
		}
	}
}

func (c *composer) blocks(values map[string]string) {
	for name, b := range c.layout.Blocks {
		text, ok := values[name]
		if !ok {
			continue
		}
		c.font(b.Size, "")
		for i, line := range Wrap(text, b.Width) {
			c.pdf.Text(b.X, b.Y+float64(i)*b.LineHeight, c.tr(line))
		}
	}
}

func (c *composer) table(rows [][]string) {
	t := c.layout.Table
	_, pageHeight := c.pdf.GetPageSize()

	y := t.Y
	c.header(y)
	y += t.HeaderHeight

	c.font(t.FontSize, "")
	for i, row := range rows {
		if y+t.RowHeight > pageHeight-t.BottomMargin {
			c.pdf.AddPage()
			y = t.ContinueY
			c.header(y)
			y += t.HeaderHeight
			c.font(t.FontSize, "")
		}

		fill := i%2 == 1 && len(t.Shade) == 3
		if fill {
			c.pdf.SetFillColor(t.Shade.values())
		}
		x := t.X
		for j, col := range t.Columns {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			c.pdf.SetXY(x, y)
			c.pdf.CellFormat(col.Width, t.RowHeight, c.tr(cell), "1", 0, align(col.Align), fill, 0, "")
			x += col.Width
		}
		y += t.RowHeight
	}

	c.bands()
}

func (c *composer) header(y float64) {
	t := c.layout.Table
	c.headers = append(c.headers, headerMark{page: c.pdf.PageNo(), y: y})

	c.font(t.FontSize, "B")
	fill := len(t.HeaderFill) == 3
	if fill {
		c.pdf.SetFillColor(t.HeaderFill.values())
	}
	if len(t.HeaderText) == 3 {
		c.pdf.SetTextColor(t.HeaderText.values())
	}
	x := t.X
	for _, col := range t.Columns {
		c.pdf.SetXY(x, y)
		c.pdf.CellFormat(col.Width, t.HeaderHeight, c.tr(col.Title), "1", 0, "C", fill, 0, "")
		x += col.Width
	}
	c.pdf.SetTextColor(0, 0, 0)
}

// bands draws the semester strips above every header once the table is
// done. Positions come from the same column widths and header marks used to
// draw the table.
func (c *composer) bands() {
	t := c.layout.Table
	if len(t.Bands) == 0 || t.BandHeight <= 0 {
		return
	}
	last := c.pdf.PageNo()
	c.font(t.FontSize, "B")
	for _, h := range c.headers {
		c.pdf.SetPage(h.page)
		for _, b := range t.Bands {
			x := t.ColumnX(b.From)
			w := t.Width(b.From, b.To)
			fill := len(b.Fill) == 3
			if fill {
				c.pdf.SetFillColor(b.Fill.values())
			}
			c.pdf.SetXY(x, h.y-t.BandHeight)
			c.pdf.CellFormat(w, t.BandHeight, c.tr(b.Title), "1", 0, "C", fill, 0, "")
		}
	}
	c.pdf.SetPage(last)
}

// align adds vertical centering to the layout's horizontal alignment.
func align(a string) string {
	if a == "" {
		a = "L"
	}
	return a + "M"
}
