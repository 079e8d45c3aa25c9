// server/http.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import (
	"html/template"
	gomath "math"
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

type serverStats struct {
	Uptime           time.Duration
	AllocMemory      uint64
	TotalAllocMemory uint64
	SysMemory        uint64
	NumGC            uint32
	NumGoRoutines    int
	CPUUsage         int

	Runs []runInfo
}

var statsTemplate = template.Must(template.New("").Parse(`
<!DOCTYPE html>
<html>
<head>
<title>evtolsim results</title>
</head>
<style>
table {
  border-collapse: collapse;
  width: 100%;
}

th, td {
  border: 1px solid #dddddd;
  padding: 8px;
  text-align: left;
}

tr:nth-child(even) {
  background-color: #f2f2f2;
}
</style>
<body>
<h1>Server Status</h1>
<ul>
  <li>Uptime: {{.Uptime}}</li>
  <li>CPU usage: {{.CPUUsage}}%</li>
  <li>Allocated memory: {{.AllocMemory}} MB</li>
  <li>Total allocated memory: {{.TotalAllocMemory}} MB</li>
  <li>System memory: {{.SysMemory}} MB</li>
  <li>Garbage collection passes: {{.NumGC}}</li>
  <li>Running goroutines: {{.NumGoRoutines}}</li>
</ul>

<h1>Runs</h1>
<table>
  <tr>
  <th>Run</th>
  <th>Seed</th>
  <th>Replicate</th>
  <th>Hours</th>
  <th>Aircraft</th>
  <th>Chargers</th>
  </tr>
{{range .Runs}}
  <tr>
  <td><a href="/runs/{{.RunID}}/text"><tt>{{.RunID}}</tt></a></td>
  <td>{{.Seed}}</td>
  <td>{{.Replicate}}</td>
  <td>{{.Hours}}</td>
  <td>{{.Aircraft}}</td>
  <td>{{.Chargers}}</td>
  </tr>
{{end}}
</table>

</body>
</html>
`))

func (rs *ResultsServer) statsHandler(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := serverStats{
		Uptime:           time.Since(rs.startTime).Round(time.Second),
		AllocMemory:      m.Alloc / (1024 * 1024),
		TotalAllocMemory: m.TotalAlloc / (1024 * 1024),
		SysMemory:        m.Sys / (1024 * 1024),
		NumGC:            m.NumGC,
		NumGoRoutines:    runtime.NumGoroutine(),
	}
	// An interval of zero compares against the previous call rather than
	// blocking the request.
	if usage, err := cpu.Percent(0, false); err == nil && len(usage) > 0 {
		stats.CPUUsage = int(gomath.Round(usage[0]))
	}
	for _, res := range rs.results {
		stats.Runs = append(stats.Runs, makeRunInfo(res))
	}

	if err := statsTemplate.Execute(w, stats); err != nil {
		rs.lg.Errorf("stats template: %v", err)
	}
}
