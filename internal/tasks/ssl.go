package tasks

import (
	"AppBuilder/internal/constants"
	"AppBuilder/internal/logger"
	"AppBuilder/internal/options"
	"AppBuilder/internal/prompt"
	"AppBuilder/internal/render"
	"AppBuilder/internal/system"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

type sslMode int

const (
	sslNone sslMode = iota
	sslSelf
	sslFiles
)

// certValidity is how long a self-signed certificate lasts.
const certValidity = 365 * 24 * time.Hour

// SSL installs the certificate the web container serves and renders its nginx config.
type SSL struct {
	Project
	// Now overrides time.Now for certificate dates.
	Now func() time.Time
}

func (t *SSL) questions() []prompt.Question {
	useSSL := func(o options.Options) bool { return o.Bool("enable") }
	useFiles := func(o options.Options) bool { return useSSL(o) && !o.Bool("self") }
	return []prompt.Question{
		{
			Name:    "enable",
			Kind:    prompt.Confirm,
			Message: "Serve AppBuilder over HTTPS?",
			Default: "n",
		},
		{
			Name:    "self",
			Kind:    prompt.Confirm,
			Message: "Generate a self-signed certificate?",
			Default: "y",
			When:    useSSL,
		},
		{
			Name:     "pathKey",
			Message:  "Path to the SSL private key:",
			When:     useFiles,
			Required: true,
			Validate: prompt.FileExists,
		},
		{
			Name:     "pathCert",
			Message:  "Path to the SSL certificate:",
			When:     useFiles,
			Required: true,
			Validate: prompt.FileExists,
		},
	}
}

// mode picks the SSL mode from the given options, asking only when none of them is set.
func (t *SSL) mode(ctx context.Context, opts options.Options) (sslMode, error) {
	switch {
	case opts.Bool("none"):
		return sslNone, nil
	case opts.Bool("self"):
		return sslSelf, nil
	case opts.String("pathKey") != "" || opts.String("pathCert") != "":
		opts.Set("enable", true)
		opts.Set("self", false)
	}

	if err := prompt.AskAll(ctx, t.Asker, t.questions(), opts); err != nil {
		return sslNone, err
	}
	switch {
	case !opts.Bool("enable"):
		return sslNone, nil
	case opts.Bool("self"):
		return sslSelf, nil
	}
	return sslFiles, nil
}

// Run installs the certificate for the chosen mode and renders the nginx site config.
func (t *SSL) Run(ctx context.Context, opts options.Options) error {
	mode, err := t.mode(ctx, opts)
	if err != nil {
		return fmt.Errorf("ssl: %w", err)
	}

	keyPath := t.Path(constants.SSLDirName, constants.SSLKeyFileName)
	certPath := t.Path(constants.SSLDirName, constants.SSLCertFileName)

	switch mode {
	case sslNone:
		logger.Notice(ctx, "    SSL: disabled")
	case sslSelf:
		if err := t.selfSigned(keyPath, certPath); err != nil {
			return fmt.Errorf("ssl: generating certificate: %w", err)
		}
		logger.Notice(ctx, "    SSL: self-signed certificate written to '{{_Folder_}}%s{{|-|}}'", filepath.Dir(certPath))
	case sslFiles:
		if err := installPair(opts.String("pathKey"), opts.String("pathCert"), keyPath, certPath); err != nil {
			return fmt.Errorf("ssl: %w", err)
		}
		logger.Notice(ctx, "    SSL: certificate copied to '{{_Folder_}}%s{{|-|}}'", filepath.Dir(certPath))
	}
	system.TakeOwnership(ctx, keyPath)
	system.TakeOwnership(ctx, certPath)

	return t.writeNginxConfig(ctx, mode != sslNone)
}

func (t *SSL) writeNginxConfig(ctx context.Context, ssl bool) error {
	content, err := render.File(t.Templates, constants.NginxSourceName, map[string]any{"ssl": ssl})
	if err != nil {
		return fmt.Errorf("ssl: %w", err)
	}
	dest := t.Path(constants.NginxConfigDirName, constants.NginxConfigName)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("ssl: %w", err)
	}
	if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
		return fmt.Errorf("ssl: writing %s: %w", dest, err)
	}
	system.TakeOwnership(ctx, dest)
	logger.Info(ctx, "Wrote '{{_File_}}%s{{|-|}}'.", dest)
	return nil
}

func (t *SSL) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// selfSigned writes a new ECDSA key and a certificate for localhost and this host.
func (t *SSL) selfSigned(keyPath, certPath string) error {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return err
	}

	dnsNames := []string{"localhost"}
	if host, err := os.Hostname(); err == nil && host != "" && host != "localhost" {
		dnsNames = append(dnsNames, host)
	}
	notBefore := t.now()
	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{"AppBuilder"}, CommonName: dnsNames[len(dnsNames)-1]},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(certValidity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              dnsNames,
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1"), net.IPv6loopback},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return err
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return err
	}

	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	return writePair(keyPEM, certPEM, keyPath, certPath)
}

// installPair checks that the key matches the certificate and copies both.
func installPair(srcKey, srcCert, keyPath, certPath string) error {
	if srcKey == "" || srcCert == "" {
		return errors.New("both pathKey and pathCert are needed")
	}
	keyPEM, err := os.ReadFile(srcKey)
	if err != nil {
		return err
	}
	certPEM, err := os.ReadFile(srcCert)
	if err != nil {
		return err
	}
	if _, err := tls.X509KeyPair(certPEM, keyPEM); err != nil {
		return fmt.Errorf("%s and %s are not a matching pair: %w", srcKey, srcCert, err)
	}
	return writePair(keyPEM, certPEM, keyPath, certPath)
}

func writePair(keyPEM, certPEM []byte, keyPath, certPath string) error {
	if err := os.MkdirAll(filepath.Dir(keyPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(keyPath, keyPEM, 0600); err != nil {
		return err
	}
	return os.WriteFile(certPath, certPEM, 0644)
}
