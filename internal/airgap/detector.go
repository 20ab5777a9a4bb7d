// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package airgap

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/centralbureau/tabulator/internal/logging"
	"github.com/centralbureau/tabulator/internal/metrics"
)

// DefaultInterval is the spacing between detection cycles.
const DefaultInterval = 60 * time.Second

const securePort = "443"

const tcpConnectTimeout = 5 * time.Second

// probeTargets is the fixed table of addresses and domains a cycle
// tests connectivity against. Two IPv4 addresses, two IPv6 addresses,
// three domains — all operated by parties outside the counting
// bureau's own infrastructure, so a successful reach to any of them
// proves outbound connectivity exists.
var (
	ipv4Targets = []string{
		"104.26.1.225",    // Cloudflare (informatiebeveiligingsdienst.nl)
		"145.100.190.243", // SURFnet
	}
	ipv6Targets = []string{
		"2606:4700:20::681a:e1",            // Cloudflare (informatiebeveiligingsdienst.nl)
		"2001:610:188:410:145:100:190:243", // SURFnet
	}
	domainTargets = []string{
		"kiesraad.nl",
		"informatiebeveiligingsdienst.nl",
		"surfnet.nl",
	}
)

// Detector latches a process-wide air-gap violation flag and the time
// of the last completed check. The zero value is not usable; construct
// with New or Nop.
type Detector struct {
	enabled  bool
	interval time.Duration

	violation atomic.Bool
	lastCheck atomic.Int64 // unix nanos; 0 means never checked

	resolver *net.Resolver
	dialer   net.Dialer
	pacer    *rate.Limiter

	ipv4Breaker *gobreaker.CircuitBreaker[bool]
	ipv6Breaker *gobreaker.CircuitBreaker[bool]
	dnsBreaker  *gobreaker.CircuitBreaker[bool]

	mu sync.Mutex // serializes Check so cycles never overlap
}

// New constructs an enabled Detector that probes every interval (use
// DefaultInterval outside of tests).
func New(interval time.Duration) *Detector {
	d := &Detector{
		enabled:  true,
		interval: interval,
		resolver: net.DefaultResolver,
		dialer:   net.Dialer{Timeout: tcpConnectTimeout},
		pacer:    rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
	d.ipv4Breaker = newProbeBreaker("airgap-ipv4")
	d.ipv6Breaker = newProbeBreaker("airgap-ipv6")
	d.dnsBreaker = newProbeBreaker("airgap-dns")
	return d
}

// Nop constructs a disabled Detector: it never flags a violation and
// the request-admission gate always admits. This is the
// AIRGAP_DETECTION=false test escape hatch.
func Nop() *Detector {
	return &Detector{enabled: false}
}

func newProbeBreaker(name string) *gobreaker.CircuitBreaker[bool] {
	return gobreaker.NewCircuitBreaker[bool](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})
}

// Enabled reports whether this Detector performs real probes.
func (d *Detector) Enabled() bool {
	return d.enabled
}

// Interval returns the configured probe interval.
func (d *Detector) Interval() time.Duration {
	return d.interval
}

// ViolationDetected reports the current latched violation flag.
func (d *Detector) ViolationDetected() bool {
	return d.violation.Load()
}

// LastCheck returns the time of the last completed cycle and whether
// one has ever run.
func (d *Detector) LastCheck() (time.Time, bool) {
	nanos := d.lastCheck.Load()
	if nanos == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, nanos), true
}

// Stale reports whether the last check is older than 3x the configured
// interval, meaning the monitor is presumed dead. A Nop Detector is
// never stale; an enabled Detector that has never completed a check is
// always stale.
func (d *Detector) Stale(now time.Time) bool {
	if !d.enabled {
		return false
	}
	last, ok := d.LastCheck()
	if !ok {
		return true
	}
	return now.Sub(last) > 3*d.interval
}

// Check runs one detection cycle: TCP connects to the IPv4 table, then
// the IPv6 table, then DNS resolution of the domain table. Any success
// latches the violation flag true; an all-fail cycle clears it. The
// last-check timestamp is always stamped, even on failure paths.
func (d *Detector) Check(ctx context.Context) {
	if !d.enabled {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	violated := d.probeTCP(ctx, d.ipv4Breaker, ipv4Targets) ||
		d.probeTCP(ctx, d.ipv6Breaker, ipv6Targets) ||
		d.probeDNS(ctx, d.dnsBreaker, domainTargets)

	if violated {
		logging.Error().Msg("air-gap violation detected: outbound connectivity observed")
	}
	d.violation.Store(violated)
	d.lastCheck.Store(time.Now().UnixNano())
}

func (d *Detector) probeTCP(ctx context.Context, breaker *gobreaker.CircuitBreaker[bool], addrs []string) bool {
	for _, addr := range addrs {
		_ = d.pacer.Wait(ctx)
		ok, err := breaker.Execute(func() (bool, error) {
			conn, dialErr := d.dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr, securePort))
			if dialErr != nil {
				return false, dialErr
			}
			_ = conn.Close()
			return true, nil
		})
		if err == nil && ok {
			return true
		}
	}
	return false
}

func (d *Detector) probeDNS(ctx context.Context, breaker *gobreaker.CircuitBreaker[bool], domains []string) bool {
	for _, domain := range domains {
		_ = d.pacer.Wait(ctx)
		ok, err := breaker.Execute(func() (bool, error) {
			addrs, lookupErr := d.resolver.LookupHost(ctx, domain)
			if lookupErr != nil {
				return false, lookupErr
			}
			return len(addrs) > 0, nil
		})
		if err == nil && ok {
			return true
		}
	}
	return false
}
