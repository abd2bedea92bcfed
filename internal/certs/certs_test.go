package certs

import (
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_Certificate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "certs")
	m := NewFileManager(dir, "planner.lan", "192.168.1.20")

	cert, err := m.Certificate()
	require.NoError(t, err)
	require.Len(t, cert.Certificate, 1)

	parsed, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	assert.Equal(t, "Semester Planner", parsed.Subject.Organization[0])
	for _, host := range []string{"localhost", "127.0.0.1", "planner.lan", "192.168.1.20"} {
		assert.NoError(t, parsed.VerifyHostname(host), host)
	}

	info, err := os.Stat(m.CertFile())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	again, err := m.Certificate()
	require.NoError(t, err)
	assert.Equal(t, cert.Certificate[0], again.Certificate[0], "a valid certificate is reused")
}

func TestFileManager_RegeneratesInvalid(t *testing.T) {
	dir := t.TempDir()
	m := NewFileManager(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planner.crt"), []byte("garbage"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planner.key"), []byte("garbage"), 0600))

	cert, err := m.Certificate()
	require.NoError(t, err)
	_, err = x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
}

func TestFileManager_RegeneratesForNewHost(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFileManager(dir).Certificate()
	require.NoError(t, err)

	second, err := NewFileManager(dir, "catalog.example").Certificate()
	require.NoError(t, err)
	assert.NotEqual(t, first.Certificate[0], second.Certificate[0])

	parsed, err := x509.ParseCertificate(second.Certificate[0])
	require.NoError(t, err)
	assert.NoError(t, parsed.VerifyHostname("catalog.example"))
}

func TestFileManager_TLSConfig(t *testing.T) {
	cfg, err := NewFileManager(t.TempDir()).TLSConfig()
	require.NoError(t, err)
	assert.Len(t, cfg.Certificates, 1)
}
