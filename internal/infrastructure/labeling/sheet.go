package labeling

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/domain/printing"
)

// Sheet layout
const (
	sheetContainerPaddingCM = 0.5
	sheetContainerPaddingMM = 5
	sheetGapCM              = 0.8
	sheetImageMaxWidthCM    = 9
	sheetImageMaxHeightCM   = 13
)

var sheetTemplate = template.Must(template.New("label-sheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page {
    size: {{.PageSize}} {{.Orientation}};
    margin: {{.MarginTopCM}}cm {{.MarginRightCM}}cm {{.MarginBottomCM}}cm {{.MarginLeftCM}}cm;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: Arial, sans-serif;
    background: white;
    width: {{.PageWidthCM}}cm;
    min-height: {{.PageHeightCM}}cm;
    print-color-adjust: exact;
    -webkit-print-color-adjust: exact;
  }
  .container { width: 100%; padding: {{.PaddingCM}}cm; }
  .container.single {
    display: flex;
    align-items: center;
    justify-content: center;
    min-height: {{.PrintableHeightCM}}cm;
  }
  .qr-grid {
    display: grid;
    grid-template-columns: repeat({{.Columns}}, 1fr);
    grid-template-rows: repeat({{.Rows}}, 1fr);
    gap: {{.GapCM}}cm;
    width: 100%;
  }
  .qr-item {
    display: flex;
    align-items: center;
    justify-content: center;
    page-break-inside: avoid;
    break-inside: avoid;
    overflow: hidden;
    aspect-ratio: {{.AspectWidth}} / {{.AspectHeight}};
  }
  .qr-item img {
    width: 100%;
    height: 100%;
    object-fit: contain;
    display: block;
    max-width: {{.ImageMaxWidthCM}}cm;
    max-height: {{.ImageMaxHeightCM}}cm;
  }
</style>
</head>
<body>
<div class="container{{if .Single}} single{{end}}" data-policy="{{.Policy}}">
  <div class="qr-grid">
{{- range .Items}}
    <div class="qr-item"><img src="{{.Src}}" alt="{{.Alt}}" width="{{.Width}}" height="{{.Height}}"></div>
{{- end}}
  </div>
</div>
</body>
</html>
`))

type sheetItem struct {
	Src    template.URL
	Alt    string
	Width  int
	Height int
}

type sheetView struct {
	Title             string
	PageSize          string
	Orientation       string
	PageWidthCM       float64
	PageHeightCM      float64
	PrintableHeightCM float64
	MarginTopCM       float64
	MarginRightCM     float64
	MarginBottomCM    float64
	MarginLeftCM      float64
	PaddingCM         float64
	GapCM             float64
	Columns           int
	Rows              int
	AspectWidth       int
	AspectHeight      int
	ImageMaxWidthCM   float64
	ImageMaxHeightCM  float64
	Single            bool
	Policy            string
	Items             []sheetItem
}

// RenderSheetHTML produces a self-contained printable page with every label
// embedded as an inline PNG.
func RenderSheetHTML(sheet *labeling.PrintSheet) ([]byte, error) {
	if sheet == nil || len(sheet.Labels) == 0 {
		return nil, labeling.ErrEmptyBatch
	}

	widthMM, heightMM := sheet.Page.PaperSize.Dimensions()
	if sheet.Page.Orientation == printing.OrientationLandscape {
		widthMM, heightMM = heightMM, widthMM
	}
	m := sheet.Page.Margins
	view := sheetView{
		Title:             fmt.Sprintf("Etiquetas QR (%d)", len(sheet.Labels)),
		PageSize:          sheet.Page.PaperSize.CSSName(),
		Orientation:       sheet.Page.Orientation.String(),
		PageWidthCM:       mmToCM(widthMM),
		PageHeightCM:      mmToCM(heightMM),
		PrintableHeightCM: mmToCM(heightMM - m.Top - m.Bottom - sheetContainerPaddingMM*2),
		MarginTopCM:       mmToCM(m.Top),
		MarginRightCM:     mmToCM(m.Right),
		MarginBottomCM:    mmToCM(m.Bottom),
		MarginLeftCM:      mmToCM(m.Left),
		PaddingCM:         sheetContainerPaddingCM,
		GapCM:             sheetGapCM,
		Columns:           sheet.Grid.Columns,
		Rows:              sheet.Grid.Rows,
		ImageMaxWidthCM:   sheetImageMaxWidthCM,
		ImageMaxHeightCM:  sheetImageMaxHeightCM,
		Single:            sheet.Centered(),
		Policy:            sheet.Policy,
		Items:             make([]sheetItem, 0, len(sheet.Labels)),
	}

	first := sheet.Labels[0]
	view.AspectWidth, view.AspectHeight = first.Width, first.Height
	for i, label := range sheet.Labels {
		view.Items = append(view.Items, sheetItem{
			Src:    template.URL(label.DataURI()),
			Alt:    fmt.Sprintf("QR %d %s", i+1, label.SKU),
			Width:  label.Width,
			Height: label.Height,
		})
	}

	var buf bytes.Buffer
	if err := sheetTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render label sheet: %w", err)
	}
	return buf.Bytes(), nil
}

func mmToCM(mm int) float64 {
	return float64(mm) / 10
}
