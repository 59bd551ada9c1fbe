package preflight

import (
	"context"
	"net/url"
)

// CheckOnline reports whether the yarn registry is reachable. If its host
// does not resolve but a proxy is configured, the proxy host is tried
// instead. npm handles offline mode itself, so it is always online here.
func (c *Checker) CheckOnline(ctx context.Context, useYarn bool) bool {
	if !useYarn {
		return true
	}

	_, err := c.DNS.LookupHost(ctx, c.YarnHost)
	if err == nil {
		return true
	}
	c.logger().Debug("registry lookup failed", "host", c.YarnHost, "err", err)

	proxy := c.Proxy(ctx)
	if proxy == "" {
		return false
	}
	host := proxyHost(proxy)
	if host == "" {
		return false
	}
	_, err = c.DNS.LookupHost(ctx, host)
	return err == nil
}

// proxyHost extracts the hostname from a proxy setting, with or without a
// scheme.
func proxyHost(proxy string) string {
	if u, err := url.Parse(proxy); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	if u, err := url.Parse("http://" + proxy); err == nil {
		return u.Hostname()
	}
	return ""
}
