package game

import (
	"testing"
	"time"
)

func newTestNavigator(t *testing.T) (*Navigator, *manualClock) {
	t.Helper()
	clk := newManualClock()
	return NewNavigator(testRegistry(t), DefaultNavParams(), clk.Now), clk
}

func TestGoToSceneForced(t *testing.T) {
	nav, _ := newTestNavigator(t)
	for i := 0; i < nav.reg.Len(); i++ {
		if !nav.GoToScene(i, true) {
			t.Fatalf("GoToScene(%d, true) refused", i)
		}
		if nav.Current() != i {
			t.Errorf("Expected current %d, got %d", i, nav.Current())
		}
		if nav.Detail() != nil {
			t.Errorf("Expected no detail after scene change to %d", i)
		}
	}
}

func TestGoToSceneOutOfRange(t *testing.T) {
	nav, _ := newTestNavigator(t)
	nav.GoToScene(2, true)

	calls := 0
	nav.SceneChanged = func(prev, next int) { calls++ }
	for _, i := range []int{-1, nav.reg.Len(), 99} {
		if nav.GoToScene(i, true) {
			t.Errorf("GoToScene(%d) should be a no-op", i)
		}
	}
	if nav.Current() != 2 {
		t.Errorf("Expected current to stay at 2, got %d", nav.Current())
	}
	if calls != 0 {
		t.Errorf("Expected no SceneChanged calls, got %d", calls)
	}
}

func TestGoToSceneClosesDetail(t *testing.T) {
	nav, _ := newTestNavigator(t)
	nav.GoToScene(1, true)
	if !nav.OpenDetail(&nav.Scene().Items[0].Details) {
		t.Fatal("OpenDetail refused")
	}
	nav.GoToScene(2, true)
	if nav.Detail() != nil {
		t.Error("Expected detail to close on scene change")
	}
}

func TestOpenDetailOnlyOne(t *testing.T) {
	nav, _ := newTestNavigator(t)
	nav.GoToScene(1, true)
	items := nav.Scene().Items
	if !nav.OpenDetail(&items[0].Details) {
		t.Fatal("OpenDetail refused")
	}
	if nav.OpenDetail(&items[1].Details) {
		t.Error("Expected second OpenDetail to be refused")
	}
	if nav.Detail() != &items[0].Details {
		t.Error("Expected first detail to stay open")
	}
	if nav.OpenDetail(nil) {
		t.Error("Expected nil detail to be refused")
	}
}

func TestWheelThreshold(t *testing.T) {
	tests := []struct {
		delta float64
		want  int
	}{
		{29, 0},
		{-29, 0},
		{30, 1},
		{100, 1},
	}
	for _, tt := range tests {
		nav, _ := newTestNavigator(t)
		nav.HandleWheel(tt.delta)
		if nav.Current() != tt.want {
			t.Errorf("HandleWheel(%v): expected index %d, got %d", tt.delta, tt.want, nav.Current())
		}
	}
}

func TestWheelBelowThresholdDoesNotArmCooldown(t *testing.T) {
	nav, _ := newTestNavigator(t)
	nav.HandleWheel(10)
	if nav.CooldownActive() {
		t.Error("Expected noise to leave the cooldown disarmed")
	}
}

func TestWheelCooldown(t *testing.T) {
	nav, clk := newTestNavigator(t)

	if !nav.HandleWheel(100) {
		t.Fatal("Expected first wheel to move")
	}
	for i := 0; i < 10; i++ {
		clk.Advance(90 * time.Millisecond)
		if nav.HandleWheel(100) {
			t.Fatalf("Wheel %d accepted during cooldown", i)
		}
	}
	if nav.Current() != 1 {
		t.Errorf("Expected one transition inside the window, got index %d", nav.Current())
	}

	clk.Advance(100 * time.Millisecond)
	if !nav.HandleWheel(100) {
		t.Error("Expected wheel to be accepted after the cooldown")
	}
	if nav.Current() != 2 {
		t.Errorf("Expected index 2, got %d", nav.Current())
	}
}

func TestWheelAtEdgesArmsCooldown(t *testing.T) {
	nav, clk := newTestNavigator(t)

	if nav.HandleWheel(-100) {
		t.Error("Expected backward wheel at first scene to be a no-op")
	}
	if nav.Current() != 0 {
		t.Errorf("Expected index 0, got %d", nav.Current())
	}
	if !nav.CooldownActive() {
		t.Error("Expected edge wheel to arm the cooldown")
	}

	last := nav.reg.Len() - 1
	nav.GoToScene(last, true)
	clk.Advance(DefaultCooldown)
	if nav.HandleWheel(100) {
		t.Error("Expected forward wheel at last scene to be a no-op")
	}
	if nav.Current() != last {
		t.Errorf("Expected index %d, got %d", last, nav.Current())
	}
}

func TestForcedNavigationIgnoresCooldown(t *testing.T) {
	nav, _ := newTestNavigator(t)
	nav.HandleWheel(100)
	if !nav.CooldownActive() {
		t.Fatal("Expected cooldown after wheel")
	}
	if !nav.GoToScene(4, true) {
		t.Fatal("Expected forced navigation to pass the cooldown")
	}
	if nav.CooldownActive() {
		t.Error("Expected forced navigation to clear the cooldown")
	}
	if nav.GoToScene(3, false) != true {
		t.Error("Expected unforced navigation after a forced one to be accepted")
	}
}

func TestWheelIgnoredWithDetailOpen(t *testing.T) {
	nav, _ := newTestNavigator(t)
	nav.GoToScene(1, true)
	nav.OpenDetail(&nav.Scene().Items[0].Details)
	if nav.HandleWheel(100) {
		t.Error("Expected wheel to be ignored while a detail is open")
	}
	if nav.Current() != 1 {
		t.Errorf("Expected index 1, got %d", nav.Current())
	}
}

func TestWheelIgnoredOnTouchPrimary(t *testing.T) {
	nav, _ := newTestNavigator(t)
	nav.Params.TouchPrimary = true
	if nav.HandleWheel(100) {
		t.Error("Expected wheel to be ignored on touch-primary devices")
	}
}

func TestTouchSwipe(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		from, want int
	}{
		{"down advances", 300, 400, 0, 1},
		{"up retreats", 400, 300, 2, 1},
		{"short swipe ignored", 300, 350, 0, 0},
		{"back at first scene", 400, 200, 0, 0},
		{"forward at last scene", 200, 400, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, _ := newTestNavigator(t)
			nav.GoToScene(tt.from, true)
			nav.TouchStart(tt.start)
			nav.TouchEnd(tt.end)
			if nav.Current() != tt.want {
				t.Errorf("Expected index %d, got %d", tt.want, nav.Current())
			}
		})
	}
}

func TestTouchEndWithoutStart(t *testing.T) {
	nav, _ := newTestNavigator(t)
	if nav.TouchEnd(500) {
		t.Error("Expected TouchEnd without TouchStart to be ignored")
	}
}

func TestTouchRespectsCooldown(t *testing.T) {
	nav, _ := newTestNavigator(t)
	nav.HandleWheel(100)
	nav.TouchStart(100)
	if nav.TouchEnd(400) {
		t.Error("Expected swipe to be ignored during the cooldown")
	}
	if nav.Current() != 1 {
		t.Errorf("Expected index 1, got %d", nav.Current())
	}
}

func TestEscape(t *testing.T) {
	nav, _ := newTestNavigator(t)
	if nav.HandleKey(KeyEscape) {
		t.Error("Expected Escape without a detail to be a no-op")
	}

	nav.GoToScene(1, true)
	nav.OpenDetail(&nav.Scene().Items[2].Details)
	if !nav.HandleKey(KeyEscape) {
		t.Error("Expected Escape to close the detail")
	}
	if nav.Detail() != nil {
		t.Error("Expected detail to be closed")
	}
	if nav.Current() != 1 {
		t.Errorf("Expected Escape to keep the scene, got %d", nav.Current())
	}
}

func TestSceneChangedHook(t *testing.T) {
	nav, _ := newTestNavigator(t)
	var got [][2]int
	nav.SceneChanged = func(prev, next int) { got = append(got, [2]int{prev, next}) }

	nav.GoToScene(3, true)
	nav.GoToScene(1, true)
	want := [][2]int{{0, 3}, {3, 1}}
	if len(got) != len(want) {
		t.Fatalf("Expected %d calls, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Call %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
