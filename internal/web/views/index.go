// Package views renders the street viewer page. The markup is produced with
// templ components; floor plans are drawn server-side as inline SVG.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/suburbsim/street-layout-engine/internal/protocol"
)

// pixelsPerUnit scales lot coordinates to screen pixels.
const pixelsPerUnit = 14

// surfaceFill maps region surfaces to plan colors.
var surfaceFill = map[string]string{
	"grass":    "#7fb069",
	"concrete": "#c8c8c2",
	"asphalt":  "#5a5a5e",
	"wood":     "#d8b98a",
	"tile":     "#e8e4d8",
	"carpet":   "#b8a9c9",
	"void":     "#2a2a2e",
}

// IndexPage renders the whole street: one card per house with its three
// layers side by side, plus the script that keeps the page live over the
// websocket.
func IndexPage(s protocol.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>street %s</title>
<style>
body { font-family: ui-monospace, monospace; background: #1d1f21; color: #e0e0dc; margin: 1.5rem; }
h1 { font-size: 1.1rem; }
.house { margin-bottom: 2rem; }
.house h2 { font-size: 0.95rem; color: #9fb4c7; }
.layers { display: flex; gap: 1rem; flex-wrap: wrap; }
figure { margin: 0; }
figcaption { font-size: 0.75rem; color: #8a8a86; text-align: center; }
svg { background: #26282b; border: 1px solid #3a3c3f; }
button { margin-left: 0.6rem; }
</style>
</head>
<body>
<h1>street &ldquo;%s&rdquo;</h1>
`, templ.EscapeString(s.StreetSeed), templ.EscapeString(s.StreetSeed)); err != nil {
			return err
		}
		for i := range s.Houses {
			if err := houseCard(&s.Houses[i]).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, viewerScript+"</body>\n</html>\n")
		return err
	})
}

func houseCard(h *protocol.HouseLite) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div class="house" id="house-%d">
<h2>#%d &middot; %s <button onclick="regenerate(%d)">regenerate</button></h2>
<div class="layers">
`,
			h.Number, h.Number, templ.EscapeString(h.Exterior), h.Number); err != nil {
			return err
		}
		layers := []struct {
			caption string
			floor   *protocol.FloorLite
		}{
			{"plot", &h.Plot},
			{"first floor", &h.FirstFloor},
			{"second floor", &h.SecondFloor},
		}
		for _, l := range layers {
			if _, err := io.WriteString(w, "<figure>"); err != nil {
				return err
			}
			if err := floorSVG(h, l.floor).Render(ctx, w); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "<figcaption>%s</figcaption></figure>\n", l.caption); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>\n</div>\n")
		return err
	})
}

// floorSVG draws one layer. The Z axis points away from the street, so the
// plan is flipped vertically to put the street at the bottom of the image.
func floorSVG(h *protocol.HouseLite, f *protocol.FloorLite) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		width := h.Lot.MaxX - h.Lot.MinX
		depth := h.Lot.MaxZ - h.Lot.MinZ
		pw, ph := width*pixelsPerUnit, depth*pixelsPerUnit
		if _, err := fmt.Fprintf(w,
			`<svg width="%.0f" height="%.0f" viewBox="0 0 %.2f %.2f">`, pw, ph, width, depth); err != nil {
			return err
		}
		for _, r := range f.Regions {
			fill, ok := surfaceFill[r.Surface]
			if !ok {
				fill = "#888"
			}
			if _, err := io.WriteString(w, `<polygon points="`); err != nil {
				return err
			}
			for _, p := range r.Outline {
				if _, err := fmt.Fprintf(w, "%.2f,%.2f ", p.X, depth-p.Z); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w,
				`" fill="%s" stroke="#1d1f21" stroke-width="0.08"><title>%s</title></polygon>`,
				fill, templ.EscapeString(r.Name)); err != nil {
				return err
			}
		}
		for _, d := range f.Doors {
			if _, err := fmt.Fprintf(w,
				`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#f2c94c" stroke-width="0.22"/>`,
				d.Hinge.X, depth-d.Hinge.Z, d.End.X, depth-d.End.Z); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</svg>")
		return err
	})
}

// viewerScript reloads the page whenever the server announces a change; the
// plans are server-rendered, so a reload is the whole client.
const viewerScript = `<script>
(function () {
  const proto = location.protocol === "https:" ? "wss" : "ws";
  const sock = new WebSocket(proto + "://" + location.host + "/ws");
  sock.onmessage = function (ev) {
    const msg = JSON.parse(ev.data);
    if (msg.type === "HouseUpdated" || msg.type === "StreetSnapshot") {
      location.reload();
    }
    if (msg.type === "HouseRejected") {
      console.warn("house " + msg.payload.number + " rejected at " + msg.payload.stage + ": " + msg.payload.reason);
    }
  };
  window.regenerate = function (number) {
    sock.send(JSON.stringify({
      type: "RequestRegenerateHouse",
      payload: { number: number, salt: String(Date.now()) }
    }));
  };
})();
</script>
`
