package layout

import (
	"math"
	"testing"

	"github.com/idate-tech/luminous/assets"
	"github.com/idate-tech/luminous/internal/world"
)

func loadRegistry(t *testing.T) *world.Registry {
	t.Helper()
	data, err := assets.Scenes.ReadFile("scenes/idate.yaml")
	if err != nil {
		t.Fatalf("read scenes: %v", err)
	}
	reg, err := world.LoadRegistry(data)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	return reg
}

func TestClassify(t *testing.T) {
	tests := []struct {
		width int
		os    string
		want  DeviceClass
	}{
		{1920, "linux", Desktop},
		{769, "windows", Desktop},
		{768, "darwin", Touch},
		{375, "linux", Touch},
		{2048, "android", Touch},
		{1280, "iOS", Touch},
	}
	for _, tt := range tests {
		if got := Classify(tt.width, tt.os); got != tt.want {
			t.Errorf("Classify(%d, %q): expected %s, got %s", tt.width, tt.os, tt.want, got)
		}
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		w, h int
		want float64
	}{
		{1600, 950, 1},
		{3200, 950, 1},   // height-bound
		{3200, 1900, 2},  // both doubled
		{800, 475, 0.65}, // floored
		{375, 667, 1},    // phone reference
		{300, 300, 0.9},  // phone floor
		{767, 1334, 2},   // narrow uses phone reference
	}
	for _, tt := range tests {
		if got := Scale(tt.w, tt.h); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Scale(%d, %d): expected %f, got %f", tt.w, tt.h, tt.want, got)
		}
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	if !r.Contains(10, 20) || !r.Contains(39.9, 59.9) {
		t.Error("Expected corners inside")
	}
	if r.Contains(40, 20) || r.Contains(10, 60) || r.Contains(9, 30) {
		t.Error("Expected points outside")
	}
	if (Rect{}).Contains(0, 0) {
		t.Error("Expected empty rect to contain nothing")
	}
	if x, y := r.Center(); x != 25 || y != 40 {
		t.Errorf("Expected center (25,40), got (%f,%f)", x, y)
	}
	if in := r.Inset(5); in != (Rect{X: 15, Y: 25, W: 20, H: 30}) {
		t.Errorf("Unexpected inset %+v", in)
	}
}

func TestWrap(t *testing.T) {
	mono := func(s string, size float64) float64 { return float64(len([]rune(s))) }
	got := Wrap("built with intent not noise", 10, 1, mono)
	want := []string{"built with", "intent not", "noise"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if got := Wrap("extraordinarily", 4, 1, mono); len(got) != 1 {
		t.Errorf("Expected long word on its own line, got %v", got)
	}
	if got := Wrap("   ", 10, 1, mono); got != nil {
		t.Errorf("Expected no lines for blank text, got %v", got)
	}
}

func computeScene(t *testing.T, reg *world.Registry, i int, class DeviceClass, w, h int) Frame {
	t.Helper()
	return Compute(Params{
		Scene:  reg.Scene(i),
		Index:  i,
		Count:  reg.Len(),
		Width:  w,
		Height: h,
		Class:  class,
	})
}

func TestComputeButtons(t *testing.T) {
	reg := loadRegistry(t)

	first := computeScene(t, reg, 0, Desktop, 1600, 950)
	if !first.Back.Empty() {
		t.Error("Expected no back button on the first scene")
	}
	if first.Forward.Empty() {
		t.Error("Expected a forward button on the first scene")
	}

	last := computeScene(t, reg, reg.Len()-1, Desktop, 1600, 950)
	if last.Back.Empty() {
		t.Error("Expected a back button on the final scene")
	}
	if !last.Forward.Empty() {
		t.Error("Expected no forward button on the final scene")
	}
}

func TestComputeItemsAndHit(t *testing.T) {
	reg := loadRegistry(t)
	f := computeScene(t, reg, 1, Desktop, 1600, 950)

	if len(f.Items) != len(reg.Scene(1).Items) {
		t.Fatalf("Expected %d item rects, got %d", len(reg.Scene(1).Items), len(f.Items))
	}
	for i, r := range f.Items {
		cx, cy := r.Center()
		if got := f.Hit(cx, cy); got != (Target{Kind: Item, Index: i}) {
			t.Errorf("Item %d: expected hit, got %+v", i, got)
		}
		if r.X < 0 || r.X+r.W > 1600 || r.Y < 0 || r.Y+r.H > 950 {
			t.Errorf("Item %d off screen: %+v", i, r)
		}
	}
	for i := 1; i < len(f.Items); i++ {
		if f.Items[i].X <= f.Items[i-1].X {
			t.Errorf("Expected items left to right, %d at %f after %f", i, f.Items[i].X, f.Items[i-1].X)
		}
	}

	if got := f.Hit(f.Forward.Center()); got.Kind != Forward {
		t.Errorf("Expected forward hit, got %s", got.Kind)
	}
	if got := f.Hit(f.Back.Center()); got.Kind != Back {
		t.Errorf("Expected back hit, got %s", got.Kind)
	}
	if got := f.Hit(1, 1); got.Kind != None {
		t.Errorf("Expected empty corner, got %s", got.Kind)
	}
}

func TestComputeNav(t *testing.T) {
	reg := loadRegistry(t)
	f := computeScene(t, reg, 0, Desktop, 1600, 950)
	if len(f.Nav) != reg.Len() {
		t.Fatalf("Expected %d nav entries, got %d", reg.Len(), len(f.Nav))
	}
	for i, r := range f.Nav {
		if got := f.Hit(r.Center()); got != (Target{Kind: NavEntry, Index: i}) {
			t.Errorf("Nav %d: expected hit, got %+v", i, got)
		}
	}

	touch := computeScene(t, reg, 0, Touch, 375, 667)
	if len(touch.Nav) != 0 {
		t.Error("Expected no nav list on touch devices")
	}
}

func TestComputeTouchItemsTwoColumns(t *testing.T) {
	reg := loadRegistry(t)
	f := computeScene(t, reg, 1, Touch, 375, 667)
	if len(f.Items) != 4 {
		t.Fatalf("Expected 4 items, got %d", len(f.Items))
	}
	if f.Items[0].Y != f.Items[1].Y || f.Items[2].Y <= f.Items[0].Y {
		t.Errorf("Expected a 2x2 grid, got %+v", f.Items)
	}
}

func TestComputeContactForm(t *testing.T) {
	reg := loadRegistry(t)
	last := reg.Len() - 1
	f := computeScene(t, reg, last, Desktop, 1600, 950)
	for i, r := range f.Fields {
		if r.Empty() {
			t.Fatalf("Field %d has no rect", i)
		}
		if got := f.Hit(r.Center()); got != (Target{Kind: Field, Index: i}) {
			t.Errorf("Field %d: expected hit, got %+v", i, got)
		}
	}
	if f.Fields[0].Y != f.Fields[1].Y {
		t.Error("Expected name and email side by side on desktop")
	}
	if got := f.Hit(f.Submit.Center()); got.Kind != Submit {
		t.Errorf("Expected submit hit, got %s", got.Kind)
	}
	if f.QR.Empty() {
		t.Error("Expected a QR code beside the form on a wide screen")
	}

	touch := computeScene(t, reg, last, Touch, 375, 667)
	if touch.Fields[1].Y <= touch.Fields[0].Y {
		t.Error("Expected stacked fields on touch devices")
	}
	if !touch.QR.Empty() {
		t.Error("Expected no QR code on touch devices")
	}

	other := computeScene(t, reg, 0, Desktop, 1600, 950)
	if !other.Submit.Empty() || !other.Fields[0].Empty() {
		t.Error("Expected no form outside the contact scene")
	}
}

func TestComputeDetail(t *testing.T) {
	reg := loadRegistry(t)
	sc := reg.Scene(1)
	for _, class := range []DeviceClass{Desktop, Touch} {
		w, h := 1600, 950
		if class == Touch {
			w, h = 375, 667
		}
		f := Compute(Params{Scene: sc, Index: 1, Count: reg.Len(), Detail: &sc.Items[0].Details, Width: w, Height: h, Class: class})
		if !f.Detail {
			t.Fatalf("%s: expected detail frame", class)
		}
		if len(f.Nav) != 0 {
			t.Errorf("%s: expected nav hidden behind the detail", class)
		}
		if len(f.Points) != len(sc.Items[0].Details.Points) {
			t.Errorf("%s: expected %d points, got %d", class, len(sc.Items[0].Details.Points), len(f.Points))
		}
		if got := f.Hit(f.DetailBack.Center()); got.Kind != DetailBack {
			t.Errorf("%s: expected detail back hit, got %s", class, got.Kind)
		}
		// Everything behind the overlay is inert.
		if got := f.Hit(f.Items[0].Center()); got.Kind != None {
			t.Errorf("%s: expected items inert behind the detail, got %s", class, got.Kind)
		}
		if len(f.DetailTitle.Lines) == 0 || len(f.DetailDesc.Lines) == 0 {
			t.Errorf("%s: expected detail text", class)
		}
	}
}

func TestComputeCentersVertically(t *testing.T) {
	reg := loadRegistry(t)
	f := computeScene(t, reg, 0, Desktop, 1600, 950)
	top := f.Title.Y
	bottom := f.Forward.Y + f.Forward.H
	if math.Abs((top+bottom)/2-475) > 1 {
		t.Errorf("Expected content centered on 475, spans %f..%f", top, bottom)
	}
}
