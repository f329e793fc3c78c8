package document

const documentTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Config.Title}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 24px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      font-size: 13px;
      color: #1f2937;
      background: #ffffff;
    }
    .document { max-width: 820px; margin: 0 auto; }
    .controls { text-align: right; margin-bottom: 16px; }
    .controls button {
      padding: 6px 14px;
      margin-left: 8px;
      border: 1px solid #d1d5db;
      border-radius: 4px;
      background: #f9fafb;
      cursor: pointer;
    }
    .letterhead {
      display: flex;
      align-items: center;
      gap: 16px;
      border-bottom: 2px solid #b45309;
      padding-bottom: 12px;
      margin-bottom: 16px;
    }
    .logo-box {
      flex: 0 0 80px;
      width: 80px;
      height: 80px;
      display: flex;
      align-items: center;
      justify-content: center;
      overflow: hidden;
    }
    .logo-box img { max-width: 80px; max-height: 80px; }
    .logo-placeholder {
      width: 80px;
      height: 80px;
      border: 1px dashed #d6a85c;
      border-radius: 50%;
      display: flex;
      align-items: center;
      justify-content: center;
      font-size: 24px;
      font-weight: bold;
      color: #b45309;
    }
    .temple h1 { margin: 0 0 4px; font-size: 20px; color: #7c2d12; }
    .temple div { color: #4b5563; }
    .title { text-align: center; margin: 12px 0; }
    .title h2 { margin: 0; font-size: 17px; letter-spacing: 0.04em; text-transform: uppercase; }
    .title .subtitle { color: #6b7280; margin-top: 4px; }
    .meta { display: flex; flex-wrap: wrap; gap: 6px 24px; margin-bottom: 12px; }
    .meta .label, .section .label { color: #6b7280; }
    .section { margin-bottom: 12px; }
    .section h3 { margin: 0 0 6px; font-size: 13px; text-transform: uppercase; color: #7c2d12; }
    .section table td { border: none; padding: 2px 8px 2px 0; }
    table { width: 100%; border-collapse: collapse; }
    th, td { padding: 6px 8px; border-bottom: 1px solid #e5e7eb; }
    th { background: #fef3c7; font-size: 11px; text-transform: uppercase; letter-spacing: 0.03em; }
    .left { text-align: left; }
    .center { text-align: center; }
    .right { text-align: right; }
    tr.opening td, tr.closing td { font-weight: bold; background: #f9fafb; }
    tr.total td { font-weight: bold; border-top: 2px solid #9ca3af; }
    tr.muted td { color: #6b7280; }
    .empty { text-align: center; color: #6b7280; font-style: italic; }
    .totals { margin-top: 12px; margin-left: auto; width: 320px; }
    .totals td { border: none; padding: 3px 8px; }
    .totals .emphasis td { font-weight: bold; font-size: 15px; border-top: 1px solid #9ca3af; }
    .words { margin-top: 12px; padding: 8px; background: #fffbeb; border-left: 3px solid #d97706; }
    .notes { margin-top: 12px; color: #4b5563; }
    .footer { margin-top: 24px; border-top: 1px solid #e5e7eb; padding-top: 8px; font-size: 11px; color: #6b7280; text-align: center; }
    @media print {
      .controls { display: none; }
      body { padding: 0; }
    }
  </style>
</head>
<body>
  <div class="document">
    {{if .Config.ShowControls}}
    <div class="controls">
      <button type="button" onclick="window.print()">Print</button>
      <button type="button" onclick="window.close()">Close</button>
    </div>
    {{end}}
    <div class="letterhead">
      <div class="logo-box">
        {{if .Logo}}
        <img src="{{.Logo}}" alt="{{.Header.Name}}" />
        {{else}}
        <div class="logo-placeholder">{{.Initials}}</div>
        {{end}}
      </div>
      <div class="temple">
        <h1>{{.Header.Name}}</h1>
        {{range .Header.Address}}<div>{{.}}</div>{{end}}
        {{if or .Header.Phone .Header.Email}}
        <div>{{if .Header.Phone}}Tel: {{.Header.Phone}}{{end}}{{if and .Header.Phone .Header.Email}} | {{end}}{{if .Header.Email}}Email: {{.Header.Email}}{{end}}</div>
        {{end}}
      </div>
    </div>

    <div class="title">
      <h2>{{.Config.Title}}</h2>
      {{if .Config.Subtitle}}<div class="subtitle">{{.Config.Subtitle}}</div>{{end}}
    </div>

    {{if .Body.Meta}}
    <div class="meta">
      {{range .Body.Meta}}<div><span class="label">{{.Label}}:</span> <strong>{{.Value}}</strong></div>{{end}}
    </div>
    {{end}}

    {{range .Body.Sections}}
    <div class="section">
      {{if .Title}}<h3>{{.Title}}</h3>{{end}}
      <table>
        {{range .Fields}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}
      </table>
    </div>
    {{end}}

    {{if .Config.Columns}}
    <table class="lines">
      <thead>
        <tr>
          {{range .Config.Columns}}<th class="{{if .Align}}{{.Align}}{{else}}left{{end}}">{{.Label}}</th>{{end}}
        </tr>
      </thead>
      <tbody>
        {{range .Body.Rows}}
        <tr{{if .Class}} class="{{.Class}}"{{end}}>
          {{range $i, $cell := .Cells}}<td class="{{cellAlign $.Aligns $i}}">{{$cell}}</td>{{end}}
        </tr>
        {{else}}
        <tr><td class="empty" colspan="{{.Colspan}}">{{.Body.EmptyText}}</td></tr>
        {{end}}
      </tbody>
    </table>
    {{end}}

    {{if .Totals}}
    <table class="totals">
      {{range .Totals}}
      <tr{{if .Emphasis}} class="emphasis"{{end}}>
        <td>{{.Label}}</td>
        <td class="right">{{if $.Config.CurrencySymbol}}{{$.Config.CurrencySymbol}} {{end}}{{.Value}}</td>
      </tr>
      {{end}}
    </table>
    {{end}}

    {{if .Body.AmountInWords}}
    <div class="words"><span class="label">Amount in words:</span> <strong>{{.Body.AmountInWords}}</strong></div>
    {{end}}

    {{if .Body.Notes}}
    <div class="notes">
      {{range .Body.Notes}}<div>{{.}}</div>{{end}}
    </div>
    {{end}}

    <div class="footer">
      <div>This is a computer generated document.</div>
      {{if .Footer}}<div>{{.Footer}}</div>{{end}}
    </div>
  </div>
</body>
</html>
`
