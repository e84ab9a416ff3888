package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrustedSubnet(t *testing.T) {
	tests := []struct {
		name       string
		subnet     string
		ip         string
		wantStatus int
		wantCalls  int
	}{
		{name: "trusted subnet is not set", subnet: "", ip: "127.0.0.4", wantStatus: http.StatusForbidden},
		{name: "address is in trusted subnet", subnet: "127.0.0.1/24", ip: "127.0.0.4", wantStatus: http.StatusOK, wantCalls: 1},
		{name: "address is not in trusted subnet", subnet: "127.0.0.1/24", ip: "192.169.1.11", wantStatus: http.StatusForbidden},
		{name: "address is missing", subnet: "127.0.0.1/24", ip: "", wantStatus: http.StatusForbidden},
		{name: "address is malformed", subnet: "127.0.0.1/24", ip: "127.0.0", wantStatus: http.StatusForbidden},
		{name: "ipv6 subnet", subnet: "2001:db8::/32", ip: "2001:db8::1", wantStatus: http.StatusOK, wantCalls: 1},
		{name: "failed to parse trusted subnet", subnet: "12799.0.0.1/24", ip: "127.0.0.1", wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.ip != "" {
				request.Header.Set(realIPHeader, tt.ip)
			}
			response := httptest.NewRecorder()
			var calls int
			spy := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
			})
			sut := TrustedSubnet(tt.subnet)(spy)

			sut.ServeHTTP(response, request)

			assert.Equal(t, tt.wantStatus, response.Code)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}
