// Package heatmap renders fold-change matrices as diverging-color grids with
// per-gene row labels, in the mm-based canvas coordinate space.
package heatmap

import (
	"fmt"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/degmap/degmap/lfc"
)

// Millimeters per typographic point
const ptMM = 25.4 / 72

// Params controls figure geometry and typography. Zero values fall back to
// the defaults used by the example configurations.
type Params struct {
	WidthMM    float64
	HeightMM   float64
	FontFamily string
	RowFontPt  float64
	ColFontPt  float64

	// Clip the color scale to the 2nd-98th percentile of the values
	Robust bool

	// Number of leading condition columns before a one-cell visual gap, for
	// the two-condition comparison view. Zero disables the gap.
	GroupBreak int

	ScaleTitle string
	AxisTitle  string
}

func (p *Params) applyDefaults() {
	if p.WidthMM == 0 {
		p.WidthMM = 210
	}
	if p.HeightMM == 0 {
		p.HeightMM = 297
	}
	if p.FontFamily == "" {
		p.FontFamily = "Arial"
	}
	if p.RowFontPt == 0 {
		p.RowFontPt = 11
	}
	if p.ColFontPt == 0 {
		p.ColFontPt = 12
	}
	if p.ScaleTitle == "" {
		p.ScaleTitle = "Log2FoldChange"
	}
	if p.AxisTitle == "" {
		p.AxisTitle = "Gene ID"
	}
}

// RenderMerged renders a two-condition comparison view, inserting the visual
// gap between the left and right column groups.
func RenderMerged(m *lfc.Merged, outPath string, p Params) error {
	p.GroupBreak = m.GroupBreak
	return Render(&m.Table, outPath, p)
}

// Render draws the table as a heatmap and writes it to outPath. The output
// format follows the file extension (.pdf and .svg keep text as vectors,
// .png rasterizes). Every row is drawn, and the left margin is sized from the
// widest row label so no label is truncated.
func Render(t *lfc.Table, outPath string, p Params) error {
	p.applyDefaults()

	family := canvas.NewFontFamily("figure")
	if err := family.LoadLocalFont(p.FontFamily, canvas.FontRegular); err != nil {
		return pfx.Err(err)
	}
	// Column labels are italic per convention; fall back to regular when the
	// family has no italic cut.
	colStyle := canvas.FontItalic
	if err := family.LoadLocalFont(p.FontFamily, canvas.FontItalic); err != nil {
		colStyle = canvas.FontRegular
	}

	rowFace := family.Face(p.RowFontPt, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	colFace := family.Face(p.ColFontPt, canvas.Black, colStyle, canvas.FontNormal)
	barFace := family.Face(10.0, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	axisFace := family.Face(14.0, canvas.Black, canvas.FontRegular, canvas.FontNormal)

	c := canvas.New(p.WidthMM, p.HeightMM)
	ctx := canvas.NewContext(c)

	// White background
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(p.WidthMM, p.HeightMM))

	// Margins. The left margin must fit the widest row label plus the
	// rotated axis title.
	maxLabelMM := 0.0
	for _, label := range t.Labels {
		if w := rowFace.TextWidth(label); w > maxLabelMM {
			maxLabelMM = w
		}
	}
	axisTitleMM := 14.0 * ptMM * 1.4

	left := axisTitleMM + maxLabelMM + 4
	right := 3.0
	top := 3.0
	colLabelMM := p.ColFontPt * ptMM * 1.5
	bottom := 28.0 + colLabelMM

	gridW := p.WidthMM - left - right
	gridH := p.HeightMM - top - bottom
	gridX := left
	gridY := p.HeightMM - top - gridH

	nrows := len(t.Values)
	slots := len(t.Conditions)
	if p.GroupBreak > 0 && p.GroupBreak < len(t.Conditions) {
		slots++
	}
	if nrows == 0 || slots == 0 {
		return pfx.Err(fmt.Errorf("nothing to render: %d rows, %d condition columns", nrows, len(t.Conditions)))
	}

	cellW := gridW / float64(slots)
	cellH := gridH / float64(nrows)

	scale := NewScale(t.Values, p.Robust)

	// slotX maps a condition index to its horizontal slot, skipping the gap
	// slot in the comparison view.
	slotX := func(col int) float64 {
		slot := col
		if p.GroupBreak > 0 && col >= p.GroupBreak {
			slot++
		}
		return gridX + float64(slot)*cellW
	}

	// Cells, top row first to match reading order
	for r, row := range t.Values {
		y := gridY + gridH - float64(r+1)*cellH
		for col, v := range row {
			ctx.SetFillColor(scale.Color(v))
			ctx.DrawPath(slotX(col), y, canvas.Rectangle(cellW, cellH))
		}
	}

	// Row labels, right-aligned against the grid
	for r, label := range t.Labels {
		y := gridY + gridH - (float64(r)+0.5)*cellH - 0.35*p.RowFontPt*ptMM
		ctx.DrawText(gridX-1.5, y, canvas.NewTextLine(rowFace, label, canvas.Right))
	}

	// Column labels beneath the grid
	for col, cond := range t.Conditions {
		x := slotX(col) + cellW/2
		ctx.DrawText(x, gridY-colLabelMM, canvas.NewTextLine(colFace, cond, canvas.Center))
	}

	// Rotated axis title along the left edge
	ctx.Push()
	ctx.Rotate(90)
	ctx.DrawText(gridY+gridH/2, -axisTitleMM*0.75, canvas.NewTextLine(axisFace, p.AxisTitle, canvas.Center))
	ctx.Pop()

	drawColorbar(ctx, scale, barFace, p.ScaleTitle, gridX, gridW)

	return pfx.Err(renderers.Write(outPath, c))
}

// drawColorbar draws the horizontal legend under the figure: a gradient bar
// spanning the grid width with min/mid/max ticks and a title.
func drawColorbar(ctx *canvas.Context, scale Scale, face *canvas.FontFace, title string, x, w float64) {
	const (
		barY = 15.0
		barH = 5.0
	)

	segments := 64
	segW := w / float64(segments)
	for i := 0; i < segments; i++ {
		frac := (float64(i) + 0.5) / float64(segments)
		v := -scale.Limit + 2*scale.Limit*frac
		ctx.SetFillColor(scale.Color(v))
		ctx.DrawPath(x+float64(i)*segW, barY, canvas.Rectangle(segW, barH))
	}

	format := func(v float64) string {
		return strconv.FormatFloat(v, 'g', 3, 64)
	}
	ctx.DrawText(x, barY-4, canvas.NewTextLine(face, format(-scale.Limit), canvas.Left))
	ctx.DrawText(x+w/2, barY-4, canvas.NewTextLine(face, "0", canvas.Center))
	ctx.DrawText(x+w, barY-4, canvas.NewTextLine(face, format(scale.Limit), canvas.Right))

	ctx.DrawText(x+w/2, barY-9, canvas.NewTextLine(face, title, canvas.Center))
}
