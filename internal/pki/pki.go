// Package pki builds the certificate material required to initialize an
// HSM cluster: a locally generated certificate authority and a cluster
// certificate signed against the cluster's certificate-signing request.
package pki

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Options controls certificate authority generation.
type Options struct {
	// CommonName for the issuing CA certificate.
	CommonName string
	// Organization recorded in the CA subject.
	Organization string
	// Country recorded in the CA subject.
	Country string
	// KeyBits is the RSA key size for the CA key. Defaults to 4096.
	KeyBits int
	// Validity is the lifetime of both the CA and the signed cluster
	// certificate. Defaults to ten years.
	Validity time.Duration
}

func (o Options) withDefaults() Options {
	if o.CommonName == "" {
		o.CommonName = "hsmctl cluster CA"
	}
	if o.KeyBits == 0 {
		o.KeyBits = 4096
	}
	if o.Validity == 0 {
		o.Validity = 10 * 365 * 24 * time.Hour
	}
	return o
}

// Material holds everything the initialization driver consumes: the trust
// anchor (self-signed CA certificate), the cluster certificate signed
// against the cluster's CSR, and the CA private key for safekeeping.
// It is produced once per cluster initialization and consumed exactly once.
type Material struct {
	// CACertPEM is the self-signed certificate authority certificate,
	// submitted as the trust anchor.
	CACertPEM []byte
	// CAKeyPEM is the PEM-encoded PKCS#1 CA private key.
	CAKeyPEM []byte
	// ClusterCertPEM is the cluster certificate signed by the CA.
	ClusterCertPEM []byte
}

// IssueClusterCertificate generates a fresh CA and signs the given CSR with
// it. The CSR is the PEM-encoded certificate-signing request reported by
// the cluster once it reaches the uninitialized state.
func IssueClusterCertificate(csrPEM string, opts Options) (*Material, error) {
	opts = opts.withDefaults()

	csr, err := parseCSR(csrPEM)
	if err != nil {
		return nil, err
	}

	caKey, err := rsa.GenerateKey(rand.Reader, opts.KeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CA key: %w", err)
	}

	now := time.Now()
	caTemplate := &x509.Certificate{
		SerialNumber: newSerial(),
		Subject: pkix.Name{
			CommonName:   opts.CommonName,
			Organization: nonEmpty(opts.Organization),
			Country:      nonEmpty(opts.Country),
		},
		NotBefore:             now.Add(-5 * time.Minute),
		NotAfter:              now.Add(opts.Validity),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	caDER, err := x509.CreateCertificate(rand.Reader, caTemplate, caTemplate, &caKey.PublicKey, caKey)
	if err != nil {
		return nil, fmt.Errorf("failed to self-sign CA certificate: %w", err)
	}
	caCert, err := x509.ParseCertificate(caDER)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated CA certificate: %w", err)
	}

	clusterTemplate := &x509.Certificate{
		SerialNumber: newSerial(),
		Subject:      csr.Subject,
		NotBefore:    now.Add(-5 * time.Minute),
		NotAfter:     now.Add(opts.Validity),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
	}

	clusterDER, err := x509.CreateCertificate(rand.Reader, clusterTemplate, caCert, csr.PublicKey, caKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign cluster certificate: %w", err)
	}

	return &Material{
		CACertPEM:      encodePEM("CERTIFICATE", caDER),
		CAKeyPEM:       encodePEM("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(caKey)),
		ClusterCertPEM: encodePEM("CERTIFICATE", clusterDER),
	}, nil
}

// parseCSR decodes and validates a PEM-encoded certificate-signing request.
func parseCSR(csrPEM string) (*x509.CertificateRequest, error) {
	block, _ := pem.Decode([]byte(csrPEM))
	if block == nil {
		return nil, errors.New("cluster CSR is not valid PEM")
	}
	if block.Type != "CERTIFICATE REQUEST" && block.Type != "NEW CERTIFICATE REQUEST" {
		return nil, fmt.Errorf("unexpected PEM block type %q in cluster CSR", block.Type)
	}

	csr, err := x509.ParseCertificateRequest(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cluster CSR: %w", err)
	}
	if err := csr.CheckSignature(); err != nil {
		return nil, fmt.Errorf("cluster CSR signature check failed: %w", err)
	}

	return csr, nil
}

func newSerial() *big.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	serial, err := rand.Int(rand.Reader, limit)
	if err != nil {
		// crypto/rand failure means nothing else is trustworthy either.
		panic(fmt.Sprintf("pki: failed to generate serial number: %v", err))
	}
	return serial
}

func encodePEM(blockType string, der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
