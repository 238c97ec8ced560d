package v1

import "html/template"

var logsTemplate = template.Must(template.New("logs").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>Lectio Message Logs</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 2em; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
    th { background: #222; color: #fff; }
    tr:nth-child(even) { background: #f4f4f4; }
    .SUCCESS { color: #1a7f37; font-weight: bold; }
    .ERROR { color: #b42318; font-weight: bold; }
    .INFO { color: #555; }
  </style>
</head>
<body>
  <h2>Lectio Message Logs</h2>
  <table>
    <thead>
      <tr><th>timestamp</th><th>level</th><th>task_id</th><th>receiver</th><th>description</th></tr>
    </thead>
    <tbody>
    {{range .}}
      <tr>
        <td>{{.Timestamp}}</td>
        <td class="{{.Level}}">{{.Level}}</td>
        <td>{{.TaskID}}</td>
        <td>{{.Receiver}}</td>
        <td>{{.Description}}</td>
      </tr>
    {{end}}
    </tbody>
  </table>
</body>
</html>
`))
