package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/Edward-VS/Kerkers-sub000/internal/protocol"
)

// LayerRows draws floor z of s as text, north at the top. Empty positions
// are '#', rock is 'R' and every other square is '.'.
func LayerRows(s *protocol.Snapshot, z int) []string {
	w, d := s.Size.X, s.Size.Y
	if w <= 0 || d <= 0 {
		return nil
	}
	cells := make([][]byte, d)
	for y := range cells {
		cells[y] = []byte(strings.Repeat("#", w))
	}
	for _, sq := range s.Layer(z) {
		if sq.Pos.X < 0 || sq.Pos.X >= w || sq.Pos.Y < 0 || sq.Pos.Y >= d {
			continue
		}
		c := byte('.')
		if sq.Kind == "rock" {
			c = 'R'
		}
		cells[sq.Pos.Y][sq.Pos.X] = c
	}
	rows := make([]string, 0, d)
	for y := d - 1; y >= 0; y-- {
		rows = append(rows, string(cells[y]))
	}
	return rows
}

// IndexPage renders the viewer for a dungeon snapshot. The page keeps
// itself current through the /stream websocket.
func IndexPage(s *protocol.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!doctype html><html><head><meta charset=\"utf-8\">")
		fmt.Fprintf(&b, "<title>%s</title>", templ.EscapeString(s.Name))
		b.WriteString("<style>pre{font-size:18px;line-height:1}section{display:inline-block;margin:1em}</style>")
		b.WriteString("</head><body>")
		fmt.Fprintf(&b, "<h1>%s</h1>", templ.EscapeString(s.Name))
		fmt.Fprintf(&b, "<p id=\"status\">%d squares in %d thermal groups</p>", len(s.Squares), s.ThermalGroups)
		b.WriteString("<button data-intent=\"RequestScramble\">Scramble</button>")
		b.WriteString("<div id=\"layers\">")
		for z := s.Size.Z - 1; z >= 0; z-- {
			fmt.Fprintf(&b, "<section><h2>Floor %d</h2><pre>", z)
			for _, row := range LayerRows(s, z) {
				b.WriteString(templ.EscapeString(row))
				b.WriteByte('\n')
			}
			b.WriteString("</pre></section>")
		}
		b.WriteString("</div>")
		b.WriteString(streamScript)
		b.WriteString("</body></html>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

const streamScript = `<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/stream");
ws.onmessage = (ev) => {
  const patch = JSON.parse(ev.data);
  if (patch.type !== "Snapshot") {
    document.getElementById("status").textContent = patch.type + " #" + patch.seq;
    return;
  }
  location.reload();
};
document.querySelectorAll("button[data-intent]").forEach((btn) => {
  btn.onclick = () => ws.send(JSON.stringify({type: btn.dataset.intent, payload: {}}));
});
</script>`
