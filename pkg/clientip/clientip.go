package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the normalized client IP of r, or "" when none of the
// sources holds a valid address. Sources are checked in order:
//
//  1. CF-Connecting-IP, set by Cloudflare in front of the site
//  2. X-Forwarded-For, first valid entry (API Gateway, CloudFront, nginx)
//  3. X-Real-IP
//  4. RemoteAddr, with or without a port
//
// The headers are trusted as sent. Deploy behind a proxy that overwrites them.
func FromRequest(r *http.Request) string {
	if ip := parse(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	for entry := range strings.SplitSeq(r.Header.Get("X-Forwarded-For"), ",") {
		if ip := parse(entry); ip != "" {
			return ip
		}
	}

	if ip := parse(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return parse(host)
	}
	return parse(r.RemoteAddr)
}

func parse(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
