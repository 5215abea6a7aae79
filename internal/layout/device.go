// Package layout turns a scene and a viewport into screen geometry: the
// viewport scale, the device class and a hit rectangle for every clickable
// element. It has no rendering dependency so both frontends share it.
package layout

import (
	"math"
	"strings"
)

// DeviceClass selects between the pointer-driven and touch-driven layouts.
type DeviceClass uint8

const (
	Desktop DeviceClass = iota
	Touch
)

func (c DeviceClass) String() string {
	if c == Touch {
		return "touch"
	}
	return "desktop"
}

// MobileBreakpoint is the widest viewport still treated as a phone.
const MobileBreakpoint = 768

// Reference viewports the scene content is designed for.
const (
	desktopRefW, desktopRefH = 1600.0, 950.0
	mobileRefW, mobileRefH   = 375.0, 667.0
	desktopMinScale          = 0.65
	mobileMinScale           = 0.9
)

var mobileOS = map[string]bool{
	"android": true,
	"ios":     true,
	"iphone":  true,
	"ipad":    true,
}

// Classify returns Touch for narrow viewports and mobile operating systems.
func Classify(width int, osName string) DeviceClass {
	if width <= MobileBreakpoint || mobileOS[strings.ToLower(osName)] {
		return Touch
	}
	return Desktop
}

// Scale fits the reference viewport into width x height. Narrow viewports
// use the phone reference. The result never drops below the class floor.
func Scale(width, height int) float64 {
	refW, refH, floor := desktopRefW, desktopRefH, desktopMinScale
	if width < MobileBreakpoint {
		refW, refH, floor = mobileRefW, mobileRefH, mobileMinScale
	}
	s := math.Min(float64(width)/refW, float64(height)/refH)
	return math.Max(s, floor)
}
