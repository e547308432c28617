// Package adapter holds helpers shared by the outbound adapters.
package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// A MakeTLSConfig returns the client [*tls.Config] for brokers.
//
// All args are the filepaths. An empty ca keeps the system pool, empty
// cert and key skip the client certificate. Unreadable files panic,
// the config is only built at startup.
func MakeTLSConfig(ca, cert, key string) *tls.Config {
	const op = "adapter.MakeTLSConfig"

	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if ca != "" {
		caCert, err := os.ReadFile(ca)
		if err != nil {
			err = fmt.Errorf("%s: failed to read CA certificate file: %w", op, err)
			panic(err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			err = fmt.Errorf("%s: %s", op, "failed to parse CA certificate")
			panic(err)
		}
		cfg.RootCAs = caCertPool
	}

	if cert != "" {
		clientCert, err := tls.LoadX509KeyPair(cert, key)
		if err != nil {
			err = fmt.Errorf("%s: %w", op, err)
			panic(err)
		}
		cfg.Certificates = []tls.Certificate{clientCert}
	}

	return cfg
}
