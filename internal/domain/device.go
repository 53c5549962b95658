package domain

import (
	"net"
	"net/netip"
	"strconv"
)

// ControlPort is the fixed External Control Protocol port every device listens on.
const ControlPort uint16 = 8060

type Device struct {
	Addr netip.Addr
	Port uint16

	// Populated from /query/device-info when available.
	Vendor       string
	Model        string
	FriendlyName string
	Serial       string
}

func NewDevice(addr netip.Addr) Device {
	return Device{Addr: addr, Port: ControlPort}
}

// BaseURL returns the control endpoint root, e.g. http://192.168.1.42:8060.
func (d Device) BaseURL() string {
	port := d.Port
	if port == 0 {
		port = ControlPort
	}
	return "http://" + net.JoinHostPort(d.Addr.String(), strconv.Itoa(int(port)))
}

func (d Device) String() string {
	return d.Addr.String()
}
