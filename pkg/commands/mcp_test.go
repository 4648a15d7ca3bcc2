package commands

import (
	"net"
	"testing"
)

func TestEndpointURL(t *testing.T) {
	for _, tc := range []struct {
		bind   string
		addr   net.Addr
		secure bool
		want   string
	}{
		{"127.0.0.1", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}, false, "http://127.0.0.1:8080/mcp"},
		{"0.0.0.0", &net.TCPAddr{IP: net.IPv4zero, Port: 4100}, true, "https://127.0.0.1:4100/mcp"},
		{"::", &net.TCPAddr{IP: net.ParseIP("fd00::1"), Port: 9}, false, "http://[fd00::1]:9/mcp"},
	} {
		if got := endpointURL(tc.bind, tc.addr, "/mcp", tc.secure); got != tc.want {
			t.Fatalf("endpointURL(%s, %v) = %s, want %s", tc.bind, tc.addr, got, tc.want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	for in, want := range map[string]string{"": "/mcp", " wins ": "/wins", "/x": "/x"} {
		if got := normalizePath(in); got != want {
			t.Fatalf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
