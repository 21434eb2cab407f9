package http_server

import (
	"net"
	"net/http"
	"strings"
)

func (s *HttpServer) getRealAddr(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if s.config.Http.UsingProxy {
		if xff := strings.Trim(r.Header.Get("X-Forwarded-For"), ","); len(xff) > 0 {
			addresses := strings.Split(xff, ",")
			lastFwd := strings.TrimSpace(addresses[len(addresses)-1])
			if ip := net.ParseIP(lastFwd); ip != nil {
				remoteIP = ip.String()
			}
		} else if xri := r.Header.Get("X-Real-Ip"); len(xri) > 0 {
			if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
				remoteIP = ip.String()
			}
		}
	}
	return remoteIP
}
