package term

import (
	"strings"
	"testing"

	"github.com/idate-tech/luminous/assets"
	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/layout"
	"github.com/idate-tech/luminous/internal/world"
)

const contactScene = 5

func testView(t *testing.T) *game.View {
	t.Helper()
	data, err := assets.Scenes.ReadFile("scenes/idate.yaml")
	if err != nil {
		t.Fatalf("read scenes: %v", err)
	}
	reg, err := world.LoadRegistry(data)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	v := game.NewView(reg, game.DefaultViewOptions())
	t.Cleanup(v.Close)
	return v
}

// settle ticks until the camera and fades have converged.
func settle(v *game.View) {
	for i := 0; i < 600; i++ {
		v.Tick(1.0 / 60)
	}
}

func screenText(b *CellBuffer) string {
	rows := make([]string, b.Rows)
	for y := range rows {
		rows[y] = b.Row(y)
	}
	return strings.Join(rows, "\n")
}

// find returns the first hit with the given kind.
func find(c *Composer, k layout.Kind) (hit, bool) {
	for _, h := range c.hits {
		if h.target.Kind == k {
			return h, true
		}
	}
	return hit{}, false
}

func center(h hit) (int, int) {
	return int(h.rect.X + h.rect.W/2), int(h.rect.Y + h.rect.H/2)
}

func TestComposeFirstScene(t *testing.T) {
	v := testView(t)
	c := NewComposer(v.Registry, 120, 40)
	c.Compose(v, layout.Target{})

	text := screenText(c.Buf)
	for _, line := range v.Registry.Scene(0).Title {
		if !strings.Contains(text, strings.ToUpper(line)) {
			t.Errorf("Expected title line %q on screen", line)
		}
	}
	if !strings.Contains(text, "01 / 06") {
		t.Error("Expected scene counter")
	}
	if _, ok := find(c, layout.Back); ok {
		t.Error("Expected no back button on the first scene")
	}
	fwd, ok := find(c, layout.Forward)
	if !ok {
		t.Fatal("Expected a forward button")
	}
	x, y := center(fwd)
	if got := c.Hit(x, y); got.Kind != layout.Forward {
		t.Errorf("Expected forward at its center, got %s", got.Kind)
	}
	if got := c.Hit(0, c.Buf.Rows/2); got.Kind != layout.None {
		t.Errorf("Expected nothing at the left edge, got %s", got.Kind)
	}
}

func TestComposeNavList(t *testing.T) {
	v := testView(t)
	c := NewComposer(v.Registry, 120, 40)
	c.Compose(v, layout.Target{})

	n := 0
	for _, h := range c.hits {
		if h.target.Kind == layout.NavEntry {
			n++
		}
	}
	if n != v.Registry.Len() {
		t.Errorf("Expected %d nav entries, got %d", v.Registry.Len(), n)
	}

	narrow := NewComposer(v.Registry, 80, 40)
	narrow.Compose(v, layout.Target{})
	if _, ok := find(narrow, layout.NavEntry); ok {
		t.Error("Expected no nav list on narrow terminals")
	}
}

func TestComposeItemsAndDetail(t *testing.T) {
	v := testView(t)
	v.GoToScene(1, true)
	settle(v)

	c := NewComposer(v.Registry, 120, 40)
	c.Compose(v, layout.Target{})
	item, ok := find(c, layout.Item)
	if !ok {
		t.Fatal("Expected item tiles")
	}
	x, y := center(item)
	target := c.Hit(x, y)
	if target.Kind != layout.Item || target.Index != 0 {
		t.Fatalf("Expected item 0, got %+v", target)
	}

	v.Activate(target)
	c.Compose(v, layout.Target{})
	if len(c.hits) != 1 || c.hits[0].target.Kind != layout.DetailBack {
		t.Fatalf("Expected only the detail back button, got %+v", c.hits)
	}
	title := strings.ToUpper(v.Registry.Scene(1).Items[0].Details.Title)
	if !strings.Contains(screenText(c.Buf), title) {
		t.Errorf("Expected detail title %q on screen", title)
	}
}

func TestComposeContactForm(t *testing.T) {
	v := testView(t)
	v.GoToScene(contactScene, true)
	settle(v)

	c := NewComposer(v.Registry, 120, 40)
	c.Compose(v, layout.Target{})
	fields := 0
	for _, h := range c.hits {
		if h.target.Kind == layout.Field {
			fields++
		}
	}
	if fields != 3 {
		t.Errorf("Expected 3 fields, got %d", fields)
	}
	text := screenText(c.Buf)
	if !strings.Contains(text, "INITIATE TRANSFER") {
		t.Error("Expected submit caption")
	}
	if !strings.Contains(text, game.FieldNames[game.FieldEmail]) {
		t.Error("Expected field placeholder")
	}
	if !strings.Contains(text, "▀") && !strings.Contains(text, "█") {
		t.Error("Expected a QR code on a wide terminal")
	}
}

func TestComposeTinyTerminal(t *testing.T) {
	v := testView(t)
	c := NewComposer(v.Registry, 0, 0)
	c.Compose(v, layout.Target{})
	if c.Hit(0, 0).Kind != layout.None {
		t.Error("Expected no hits on an empty buffer")
	}
	c.Buf.Resize(10, 3)
	c.Compose(v, layout.Target{})
}

func TestTruncateAndClip(t *testing.T) {
	if got := truncate("TRANSMISSION", 6); got != "TRANS…" {
		t.Errorf("Expected %q, got %q", "TRANS…", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Errorf("Expected empty, got %q", got)
	}
	if got := clipTail("hello world", 5); got != "world" {
		t.Errorf("Expected %q, got %q", "world", got)
	}
}
