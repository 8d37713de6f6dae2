package infra

import "testing"

func TestLoadConfigDefaultDownloadBaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("FIREBASE_PROJECT_ID", "abhimusickeys")
	t.Setenv("PORT", "")
	t.Setenv("DOWNLOAD_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := "http://localhost:8080/files"
	if cfg.DownloadBaseURL != expected {
		t.Fatalf("DownloadBaseURL mismatch: got %q want %q", cfg.DownloadBaseURL, expected)
	}
	if cfg.DeniedRedirect != "/pricing" {
		t.Fatalf("DeniedRedirect default mismatch: %q", cfg.DeniedRedirect)
	}
}

func TestLoadConfigInheritsPortInDownloadBaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("FIREBASE_PROJECT_ID", "abhimusickeys")
	t.Setenv("PORT", "1919")
	t.Setenv("DOWNLOAD_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := "http://localhost:1919/files"
	if cfg.DownloadBaseURL != expected {
		t.Fatalf("DownloadBaseURL mismatch: got %q want %q", cfg.DownloadBaseURL, expected)
	}
}

func TestLoadConfigHonorsExplicitDownloadBaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("FIREBASE_PROJECT_ID", "abhimusickeys")
	t.Setenv("DOWNLOAD_BASE_URL", "https://cdn.abhimusickeys.com/files")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.DownloadBaseURL != "https://cdn.abhimusickeys.com/files" {
		t.Fatalf("DownloadBaseURL mismatch: %q", cfg.DownloadBaseURL)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FIREBASE_PROJECT_ID", "abhimusickeys")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL missing")
	}
}

func TestLoadConfigRequiresFirebaseProject(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("FIREBASE_PROJECT_ID", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when FIREBASE_PROJECT_ID missing")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://abhimusickeys.com , http://localhost:3000 ,, ")
	if len(got) != 2 || got[0] != "https://abhimusickeys.com" || got[1] != "http://localhost:3000" {
		t.Fatalf("splitList mismatch: %#v", got)
	}
}
