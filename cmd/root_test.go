package cmd

import (
	"testing"
	"time"

	"github.com/nsyszr/decoderfleet/config"
	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	got := new(config.Config)
	if err := v.Unmarshal(got); err != nil {
		t.Fatal(err)
	}

	if got.BindPort != 8080 {
		t.Errorf("BindPort = %d", got.BindPort)
	}
	if got.VendorURL != "https://wflageol-uqtr.net/decoder" || got.VendorGroupID != "AAAA00000000" {
		t.Errorf("vendor = %s %s", got.VendorURL, got.VendorGroupID)
	}
	if got.VendorTimeout != 5*time.Second || got.SessionTTL != 8*time.Hour {
		t.Errorf("durations = %v %v", got.VendorTimeout, got.SessionTTL)
	}
	if got.AddressPool != "127.0.10.1-127.0.10.12" || got.FetchConcurrency != 4 {
		t.Errorf("pool = %s x%d", got.AddressPool, got.FetchConcurrency)
	}
	if got.LogLevel != "info" || got.LogFormat != "text" {
		t.Errorf("logging = %s %s", got.LogLevel, got.LogFormat)
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("FETCH_CONCURRENCY", "8")
	t.Setenv("VENDOR_TIMEOUT", "750ms")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	got := new(config.Config)
	if err := v.Unmarshal(got); err != nil {
		t.Fatal(err)
	}
	if got.FetchConcurrency != 8 || got.VendorTimeout != 750*time.Millisecond {
		t.Errorf("got %d %v", got.FetchConcurrency, got.VendorTimeout)
	}
}
