// Package outbound builds the HTTP client shared by the Neynar and chain RPC
// adapters.
package outbound

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	Timeout time.Duration
	// ProxyURL accepts http, https and socks5 schemes. Empty means direct.
	ProxyURL string
	// Wrap decorates the final transport, e.g. with tracing.
	Wrap func(http.RoundTripper) (http.RoundTripper, error)
}

func NewHTTPClient(cfg Config) (*http.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	base := defaultTransport()
	if err := applyProxy(base, cfg.ProxyURL); err != nil {
		return nil, err
	}

	var rt http.RoundTripper = base
	if cfg.Wrap != nil {
		wrapped, err := cfg.Wrap(base)
		if err != nil {
			return nil, fmt.Errorf("wrap transport: %w", err)
		}
		rt = wrapped
	}
	return &http.Client{Timeout: timeout, Transport: rt}, nil
}

func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
}

func applyProxy(t *http.Transport, proxyAddr string) error {
	proxyAddr = strings.TrimSpace(proxyAddr)
	if proxyAddr == "" {
		return nil
	}
	u, err := url.Parse(proxyAddr)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		t.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: pass}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return fmt.Errorf("socks5 proxy: %w", err)
		}
		dc, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks5: context dialer not supported")
		}
		t.Proxy = nil
		t.DialContext = dc.DialContext
	default:
		return fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
	}
	return nil
}
