package extract

import "html/template"

var pageTmpl = template.Must(template.New("index").Parse(`<!doctype html><meta charset="utf-8"><title>OCR</title>
<style>body{font-family:system-ui;padding:18px}img{max-width:600px;height:auto;border:1px solid #ddd}</style>
<h1>OCR</h1><p>Image: <b>{{.ImgName}}</b></p>
<div style="display:flex;gap:20px;align-items:flex-start">
  <div><img src="/image" alt="image"><p><a href="/image" download>Download</a></p></div>
  <div><h3>Extracted text</h3><pre style="white-space:pre-wrap;background:#f7f7f7;padding:10px;border-radius:6px">{{.Text}}</pre>
  <p><a href="/api/ocr">JSON output</a></p></div>
</div>
`))

type pageData struct {
	ImgName string
	Text    string
}
