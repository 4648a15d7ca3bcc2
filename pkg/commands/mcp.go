package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/wins/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport string
		readOnly  bool
		host      string
		port      int
		path      string
		tlsCert   string
		tlsKey    string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "serve the journal to agents over the Model Context Protocol",
		Long: `Start an MCP server over the configured journal store.

Tools: get_day, get_streaks, get_progress, list_items, and save_day.
Resources: wins://items and wins://days/{day}.

save_day goes through the same day editor as "wins log": days after today are
refused and omitted fields keep their stored value. Use --read-only to offer
lookups only.`,
		Example: `
wins mcp --transport stdio
wins mcp --read-only --http-port 0
wins mcp --http-host 0.0.0.0 --http-tls-cert cert.pem --http-tls-key key.pem
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := normalizePath(path)
			svc, err := loadService()
			if err != nil {
				return err
			}
			defer svc.Close()

			runner := mcp.Runner{
				Service:          svc,
				Name:             "wins",
				Version:          "dev",
				ReadOnly:         readOnly,
				HTTPEndpointPath: endpoint,
				HTTPServerCert:   strings.TrimSpace(tlsCert),
				HTTPServerKey:    strings.TrimSpace(tlsKey),
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case "", string(mcp.TransportHTTP):
				if port < 0 || port > 65535 {
					return fmt.Errorf("invalid http-port %d", port)
				}
				bind := strings.TrimSpace(host)
				if bind == "" {
					bind = "127.0.0.1"
				}
				secure := runner.HTTPServerCert != "" && runner.HTTPServerKey != ""
				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = net.JoinHostPort(bind, strconv.Itoa(port))
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wins MCP server listening on %s\n", endpointURL(bind, a, endpoint, secure))
				}
			case string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Serve lookups only, without save_day.")
	cmd.Flags().StringVar(&host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&tlsCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&tlsKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// endpointURL is the address clients should dial. Wildcard binds show the
// listener's address, or loopback when that is unspecified too.
func endpointURL(bind string, a net.Addr, path string, secure bool) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return fmt.Sprintf("%s://%s%s", scheme, a.String(), path)
	}
	display := bind
	if display == "0.0.0.0" || display == "::" {
		display = "127.0.0.1"
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			display = tcp.IP.String()
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(display, strconv.Itoa(tcp.Port)), path)
}
