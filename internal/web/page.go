// Package web renders the browser shell. The page itself is static; all
// live data comes from the JSON API polled by static/js/app.js.
package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// IndexPage is the single-page shell: the map pane and the business list.
func IndexPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, indexHTML)
		return err
	})
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>GTA Timer</title>
<link rel="stylesheet" href="/static/css/app.css">
</head>
<body>
<header>
  <h1>Gta timer</h1>
  <button id="pause-toggle" type="button">Pause</button>
</header>
<main>
  <section id="map-pane">
    <div id="map" data-width="8192" data-height="8192"></div>
    <p id="picker-hint" hidden>Click the map or cycle presets to place the business.</p>
  </section>
  <aside id="business-list"></aside>
</main>
<script src="/static/js/app.js"></script>
</body>
</html>
`
