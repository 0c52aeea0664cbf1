package cvpdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
)

// baselineShiftEm lifts a line box so its baseline lands on the run's Y.
// Matches Helvetica/Arial ascent at line-height 1.
const baselineShiftEm = 0.85

// htmlFontFamily falls back to metric-compatible faces when Helvetica is absent.
const htmlFontFamily = `Helvetica, Arial, "Liberation Sans", sans-serif`

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.Width}}mm {{.Height}}mm; margin: 0; }
html, body { margin: 0; padding: 0; }
body { font-family: {{.FontFamily}}; -webkit-print-color-adjust: exact; }
.page { position: relative; width: {{.Width}}mm; height: {{.Height}}mm; overflow: hidden; page-break-after: always; }
.page:last-child { page-break-after: auto; }
.run { position: absolute; white-space: pre; line-height: 1; }
.rule { position: absolute; }
.photo { position: absolute; border-radius: 50%; }
</style>
</head>
<body>
{{- range .Pages}}
<section class="page" data-page="{{.Number}}">
{{- range .Images}}
<img class="photo" alt="" style="left: {{.X}}mm; top: {{.Y}}mm; width: {{.Size}}mm; height: {{.Size}}mm;" src="{{.Src}}">
{{- end}}
{{- range .Rules}}
<div class="rule" style="left: {{.X}}mm; top: {{.Y}}mm; width: {{.Width}}mm; height: {{.Height}}mm; background: {{.Color}};"></div>
{{- end}}
{{- range .Runs}}
<span class="run" style="left: {{.X}}mm; top: {{.Y}}mm; font-size: {{.Size}}pt; font-weight: {{.Weight}}; color: {{.Color}}; transform: {{.Transform}};">{{.Text}}</span>
{{- end}}
</section>
{{- end}}
</body>
</html>
`))

type htmlDocument struct {
	Lang       string
	Title      string
	Width      string
	Height     string
	FontFamily template.CSS
	Pages      []htmlPage
}

type htmlPage struct {
	Number int
	Images []htmlImage
	Rules  []htmlRule
	Runs   []htmlRun
}

type htmlImage struct {
	X, Y, Size string
	Src        template.URL
}

type htmlRule struct {
	X, Y, Width, Height string
	Color               template.CSS
}

type htmlRun struct {
	X, Y, Size string
	Weight     int
	Color      template.CSS
	Transform  template.CSS
	Text       string
}

// HTML renders doc as a standalone HTML page with one absolutely
// positioned box per page. The Chrome renderer prints this markup.
func HTML(doc *Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: nil document", ErrRender)
	}
	styles := doc.Styles
	if styles == nil {
		styles = DefaultStyleTable()
	}

	lang := doc.Metadata.Language
	if lang == "" {
		lang = "en"
	}
	data := htmlDocument{
		Lang:       lang,
		Title:      doc.Metadata.Title,
		Width:      mm(doc.Geometry.Width),
		Height:     mm(doc.Geometry.Height),
		FontFamily: template.CSS(htmlFontFamily),
	}

	for _, p := range doc.Pages {
		hp := htmlPage{Number: p.Number}
		for _, img := range p.Images {
			hp.Images = append(hp.Images, htmlImage{
				X:    mm(img.X),
				Y:    mm(img.Y),
				Size: mm(img.Size),
				Src:  template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img.PNG)),
			})
		}
		for _, r := range p.Rules {
			hp.Rules = append(hp.Rules, htmlRule{
				X:      mm(r.X1),
				Y:      mm(r.Y1 - r.Width/2),
				Width:  mm(r.X2 - r.X1),
				Height: mm(r.Width),
				Color:  template.CSS(r.Color.Hex()),
			})
		}
		for _, r := range p.Runs {
			spec := styles.Spec(r.Style)
			weight := 400
			if spec.Bold {
				weight = 700
			}
			transform := fmt.Sprintf("translateY(-%gem)", baselineShiftEm)
			if r.Align == AlignCenter {
				transform = fmt.Sprintf("translate(-50%%, -%gem)", baselineShiftEm)
			}
			hp.Runs = append(hp.Runs, htmlRun{
				X:         mm(r.X),
				Y:         mm(r.Y),
				Size:      trimFloat(spec.FontSize),
				Weight:    weight,
				Color:     template.CSS(spec.Color.Hex()),
				Transform: template.CSS(transform),
				Text:      r.Text,
			})
		}
		data.Pages = append(data.Pages, hp)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: html template: %v", ErrRender, err)
	}
	return buf.String(), nil
}

// mm formats a millimetre value for CSS.
func mm(v float64) string {
	return trimFloat(v)
}

// trimFloat prints v with at most three decimals and no trailing zeros.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
