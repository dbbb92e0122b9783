package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, ":9090", c.AdminAddr)
	assert.Equal(t, "sqlite", c.Storage)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 5*time.Minute, c.LoginWindow)
	assert.Equal(t, "gophschedule", c.S3Bucket)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	c, err := Load(nil, noEnv)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoad_JSONFile(t *testing.T) {
	p := writeFile(t, "server.json", `{
		"endpoint_addr_grpc": ":6000",
		"storage": "postgres",
		"access_token_validity_duration": "1h",
		"login_window": 30000000000,
		"owner_address": "0xabc"
	}`)

	c, err := Load([]string{"-c", p}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, ":6000", c.EndpointAddrGRPC)
	assert.Equal(t, "postgres", c.Storage)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, 30*time.Second, c.LoginWindow)
	assert.Equal(t, "0xabc", c.OwnerAddress)
	assert.Equal(t, "secretKey", c.SecretKey, "absent fields keep defaults")
}

func TestLoad_YAMLFromEnv(t *testing.T) {
	p := writeFile(t, "server.yaml", "storage: s3\ns3_bucket: schedules\ns3_prefix: owner/\nlogin_burst: 9\n")

	env := func(k string) string {
		if k == flagx.ConfigEnvVar {
			return p
		}
		return ""
	}
	c, err := Load(nil, env)
	require.NoError(t, err)

	assert.Equal(t, "s3", c.Storage)
	assert.Equal(t, "schedules", c.S3Bucket)
	assert.Equal(t, "owner/", c.S3Prefix)
	assert.Equal(t, 9, c.LoginBurst)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	p := writeFile(t, "server.json", `{"endpoint_addr_grpc": ":6000", "storage": "postgres"}`)

	c, err := Load([]string{"-config", p, "-a", ":7000", "-t", "2m", "-owner=0xdef", "-x", "ignored"}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, ":7000", c.EndpointAddrGRPC)
	assert.Equal(t, "postgres", c.Storage)
	assert.Equal(t, 2*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "0xdef", c.OwnerAddress)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")}, noEnv)
	assert.Error(t, err)

	bad := writeFile(t, "bad.json", `{"login_window": true}`)
	_, err = Load([]string{"-c", bad}, noEnv)
	assert.Error(t, err)

	_, err = Load([]string{"-t", "soon"}, noEnv)
	assert.Error(t, err)
}
