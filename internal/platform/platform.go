// Package platform probes the host the frontend runs on.
package platform

import (
	"context"
	"log"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/idate-tech/luminous/internal/layout"
)

// Info is what the frontends need to know about the host.
type Info struct {
	OS       string // runtime OS name, e.g. linux, android, ios
	Platform string // distribution or product, when known
	Hostname string
}

// probeTimeout bounds the host query; some platforms shell out for it.
const probeTimeout = 2 * time.Second

// HostProber abstracts the gopsutil host query.
type HostProber func(ctx context.Context) (*host.InfoStat, error)

// Probe queries the host. On failure it falls back to the compile-time OS.
func Probe(ctx context.Context) Info {
	return probeWith(ctx, host.InfoWithContext)
}

func probeWith(ctx context.Context, probe HostProber) Info {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	stat, err := probe(ctx)
	if err != nil || stat == nil {
		if err != nil {
			log.Printf("[!] Host probe failed, assuming %s: %v", runtime.GOOS, err)
		}
		return Info{OS: runtime.GOOS}
	}
	info := Info{OS: stat.OS, Platform: stat.Platform, Hostname: stat.Hostname}
	if info.OS == "" {
		info.OS = runtime.GOOS
	}
	return info
}

// Class classifies the host for a viewport of the given width.
func (i Info) Class(width int) layout.DeviceClass {
	return layout.Classify(width, i.OS)
}
