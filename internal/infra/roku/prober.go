package roku

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"rokuwake/internal/domain"
)

const (
	defaultProbeTimeout = 250 * time.Millisecond
	defaultMarker       = "roku"
	maxProbeBody        = 64 << 10
)

// routeTarget is only used to pick the outbound interface; nothing is sent.
const routeTarget = "8.8.8.8:80"

type ProberConfig struct {
	Port    uint16
	Timeout time.Duration
	// Workers bounds concurrent probes. 1 probes strictly in address order.
	Workers int
	Marker  string

	HTTPClient *http.Client
	// LocalAddr overrides outbound interface detection.
	LocalAddr func() (netip.Addr, error)
	// OnProbe is called once per finished probe.
	OnProbe func()
}

// Prober sweeps a /24 for a device answering on the control port.
type Prober struct {
	cfg    ProberConfig
	logger *slog.Logger
}

func NewProber(cfg ProberConfig, logger *slog.Logger) *Prober {
	if cfg.Port == 0 {
		cfg.Port = domain.ControlPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultProbeTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Marker == "" {
		cfg.Marker = defaultMarker
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.LocalAddr == nil {
		cfg.LocalAddr = OutboundAddr
	}

	return &Prober{cfg: cfg, logger: logger}
}

// Discover scans the /24 of the outbound interface and returns the first match.
func (p *Prober) Discover(ctx context.Context) (domain.Device, error) {
	local, err := p.cfg.LocalAddr()
	if err != nil {
		return domain.Device{}, fmt.Errorf("%w: detecting local address: %w", domain.ErrDeviceNotFound, err)
	}

	prefix, err := local.Prefix(24)
	if err != nil {
		return domain.Device{}, fmt.Errorf("%w: deriving subnet: %w", domain.ErrDeviceNotFound, err)
	}

	p.logger.Info("scanning subnet", "local", local, "prefix", prefix, "workers", p.cfg.Workers)
	return p.Scan(ctx, prefix)
}

// Scan probes hosts .1 through .254 of prefix. The lowest matching address
// wins regardless of the order responses arrive in, and no candidate above a
// known match is dispatched.
func (p *Prober) Scan(ctx context.Context, prefix netip.Prefix) (domain.Device, error) {
	candidates := Candidates(prefix)
	infos := make([]*DeviceInfo, len(candidates))

	var best atomic.Int64
	best.Store(int64(len(candidates)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for i, addr := range candidates {
		if int64(i) > best.Load() || gctx.Err() != nil {
			break
		}

		i, addr := i, addr
		g.Go(func() error {
			if int64(i) > best.Load() {
				return nil
			}

			info, ok := p.probe(gctx, addr)
			if ok {
				infos[i] = info
				for {
					cur := best.Load()
					if int64(i) >= cur || best.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}

			if p.cfg.OnProbe != nil {
				p.cfg.OnProbe()
			}
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.Device{}, err
	}

	idx := best.Load()
	if idx >= int64(len(candidates)) {
		return domain.Device{}, fmt.Errorf("%w on %s", domain.ErrDeviceNotFound, prefix)
	}

	dev := domain.Device{Addr: candidates[idx], Port: p.cfg.Port}
	if info := infos[idx]; info != nil {
		dev.Vendor = info.VendorName
		dev.Model = info.ModelName
		dev.FriendlyName = info.FriendlyName
		dev.Serial = info.SerialNumber
	}

	p.logger.Info("device found", "addr", dev.Addr, "model", dev.Model)
	return dev, nil
}

// probe treats every error as absence.
func (p *Prober) probe(ctx context.Context, addr netip.Addr) (*DeviceInfo, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	url := "http://" + net.JoinHostPort(addr.String(), strconv.Itoa(int(p.cfg.Port))) + "/query/device-info"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false
	}

	resp, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		p.logger.Debug("probe miss", "addr", addr, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBody))
	if err != nil {
		return nil, false
	}

	if !strings.Contains(strings.ToLower(string(body)), strings.ToLower(p.cfg.Marker)) {
		p.logger.Debug("probe answered without marker", "addr", addr)
		return nil, false
	}

	info, err := parseDeviceInfo(body)
	if err != nil {
		p.logger.Debug("device info not parseable", "addr", addr, "error", err)
		info = nil
	}
	return info, true
}

// Candidates lists host addresses 1..254 of the /24 containing prefix.
func Candidates(prefix netip.Prefix) []netip.Addr {
	base := prefix.Addr().Unmap().As4()
	addrs := make([]netip.Addr, 0, 254)
	for i := 1; i <= 254; i++ {
		base[3] = byte(i)
		addrs = append(addrs, netip.AddrFrom4(base))
	}
	return addrs
}

// OutboundAddr reports the local IPv4 address used to reach a public route.
// A UDP "connection" only selects a route, so no packet leaves the host.
func OutboundAddr() (netip.Addr, error) {
	conn, err := net.Dial("udp4", routeTarget)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("opening route probe: %w", err)
	}
	defer conn.Close()

	udpAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return netip.Addr{}, fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}

	addr := udpAddr.AddrPort().Addr().Unmap()
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("local address %s is not IPv4", addr)
	}
	return addr, nil
}
