package cert

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"time"

	"github.com/pkg/errors"
)

const (
	serialNumberBits = 128
	keyBits          = 2048
	validFor         = 365 * 24 * time.Hour
)

// Generate создает самоподписанный сертификат для локальных адресов и его закрытый ключ в формате PEM.
func Generate() (certPEM bytes.Buffer, privateKeyPEM bytes.Buffer, err error) {
	const op = "generate"

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), serialNumberBits))
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}

	now := time.Now()
	cert := &x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"lightid"},
			CommonName:   "localhost",
		},
		DNSNames: []string{"localhost"},
		IPAddresses: []net.IP{
			net.IPv4(127, 0, 0, 1),
			net.IPv6loopback,
		},
		NotBefore: now,
		NotAfter:  now.Add(validFor),
		ExtKeyUsage: []x509.ExtKeyUsage{
			x509.ExtKeyUsageServerAuth,
		},
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		BasicConstraintsValid: true,
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, cert, cert, &privateKey.PublicKey, privateKey)
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}

	err = pem.Encode(&certPEM, &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certBytes,
	})
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}

	err = pem.Encode(&privateKeyPEM, &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}

	return
}

// TLSConfig возвращает конфигурацию TLS с новым самоподписанным сертификатом.
func TLSConfig() (*tls.Config, error) {
	const op = "tls config"

	certPEM, keyPEM, err := Generate()
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	pair, err := tls.X509KeyPair(certPEM.Bytes(), keyPEM.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
