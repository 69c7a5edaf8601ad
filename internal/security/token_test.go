package security

import "testing"

func TestDeriveTokenIsDeterministic(t *testing.T) {
	a := DeriveToken("hunter2")
	b := DeriveToken("hunter2")
	if a == "" {
		t.Fatalf("expected a token for a non-empty secret")
	}
	if a != b {
		t.Fatalf("expected deterministic derivation, got %q and %q", a, b)
	}
}

func TestDeriveTokenDistinguishesSecrets(t *testing.T) {
	if DeriveToken("alpha") == DeriveToken("beta") {
		t.Fatalf("expected distinct tokens for distinct secrets")
	}
}

func TestDeriveTokenEmptySecret(t *testing.T) {
	if got := DeriveToken("   "); got != "" {
		t.Fatalf("expected empty token for blank secret, got %q", got)
	}
}

func TestResolveTokenPrefersEnvOverride(t *testing.T) {
	t.Setenv("MENUBRIDGE_TOKEN", "explicit-token")
	if got := ResolveToken("hunter2"); got != "explicit-token" {
		t.Fatalf("expected env token to win, got %q", got)
	}
}

func TestResolveTokenDerivesWithoutEnv(t *testing.T) {
	t.Setenv("MENUBRIDGE_TOKEN", "")
	if got := ResolveToken("hunter2"); got != DeriveToken("hunter2") {
		t.Fatalf("expected derived token, got %q", got)
	}
}
