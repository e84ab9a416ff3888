package middleware

import (
	"net"
	"net/http"
	"strings"
)

const (
	realIPHeader             = "X-Real-IP"
	failedToParseCIDRMessage = "failed to parse trusted subnet address"
)

// TrustedSubnet возвращает посредника, который пропускает только запросы из доверенной подсети.
// Адрес клиента берется из заголовка X-Real-IP. Пустая подсеть запрещает все запросы.
func TrustedSubnet(subnet string) func(h http.Handler) http.Handler {
	var (
		trusted  *net.IPNet
		parseErr error
	)
	if subnet != "" {
		_, trusted, parseErr = net.ParseCIDR(subnet)
	}

	return func(h http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			if parseErr != nil {
				http.Error(w, failedToParseCIDRMessage, http.StatusInternalServerError)
				return
			}

			if trusted == nil || !trusted.Contains(realIP(r)) {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			h.ServeHTTP(w, r)
		}
		return http.HandlerFunc(f)
	}
}

func realIP(r *http.Request) net.IP {
	return net.ParseIP(strings.TrimSpace(r.Header.Get(realIPHeader)))
}
