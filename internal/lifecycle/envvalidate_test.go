package lifecycle

import "testing"

func TestValidateAgentEnv(t *testing.T) {
	env, err := ValidateAgentEnv([]string{"FOO=bar", "", "BAZ_1=2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env["FOO"] != "bar" || env["BAZ_1"] != "2" {
		t.Fatalf("unexpected env: %+v", env)
	}
	if len(env) != 2 {
		t.Fatalf("expected blank lines to be skipped, got %+v", env)
	}
}

func TestValidateAgentEnvInvalidKey(t *testing.T) {
	_, err := ValidateAgentEnv([]string{"1FOO=bar"})
	if err == nil {
		t.Fatal("expected error for key starting with digit")
	}
	want := "invalid project agent env: invalid env key '1FOO'"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestValidateAgentEnvMissingEquals(t *testing.T) {
	_, err := ValidateAgentEnv([]string{"not-a-kv-pair"})
	if err == nil {
		t.Fatal("expected error for missing '='")
	}
}
