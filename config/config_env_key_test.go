package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"changeFeed": map[string]any{
			"topicId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"storage": map[string]any{
			"publicBaseUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "CHANGEFEED_TOPICID", want: "changeFeed.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "STORAGE_PUBLICBASEURL", want: "storage.publicBaseUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.ChangeFeed.Provider != "memory" {
		t.Fatalf("changeFeed.provider = %q, want memory", cfg.ChangeFeed.Provider)
	}
	if cfg.Storage.Driver != "file" {
		t.Fatalf("storage.driver = %q, want file", cfg.Storage.Driver)
	}
	if cfg.Marketplace.TopRatedLimit != 6 {
		t.Fatalf("marketplace.topRatedLimit = %d, want 6", cfg.Marketplace.TopRatedLimit)
	}
	if cfg.Marketplace.DefaultLatitude != 10.745 || cfg.Marketplace.DefaultLongitude != 124.79 {
		t.Fatalf("unexpected default centre %v,%v", cfg.Marketplace.DefaultLatitude, cfg.Marketplace.DefaultLongitude)
	}
	if cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= cfg.Auth.AccessTokenTTL {
		t.Fatalf("unexpected token TTLs %v/%v", cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	}
}
