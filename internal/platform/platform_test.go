package platform

import (
	"path/filepath"
	"testing"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := lookupEnvFunc
	lookupEnvFunc = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	t.Cleanup(func() { lookupEnvFunc = orig })
}

func TestDetectClassifiesGOOS(t *testing.T) {
	cases := map[string]OS{
		"windows": Windows,
		"darwin":  MacOS,
		"linux":   Linux,
		"freebsd": Linux,
	}
	orig := goos
	t.Cleanup(func() { goos = orig })
	for value, want := range cases {
		goos = value
		if got := Detect(); got != want {
			t.Fatalf("Detect() for %s = %s, want %s", value, got, want)
		}
	}
}

func TestDefaultPathsUsesHome(t *testing.T) {
	withEnv(t, map[string]string{"HOME": "/home/alice"})

	paths, err := DefaultPaths(Linux)
	if err != nil {
		t.Fatalf("DefaultPaths error: %v", err)
	}
	if paths.InstallDir != filepath.Join("/home/alice", InstallDirName) {
		t.Fatalf("unexpected install dir: %s", paths.InstallDir)
	}
	if paths.SettingsFile != filepath.Join("/home/alice", ClaudeDirName, "settings.json") {
		t.Fatalf("unexpected settings file: %s", paths.SettingsFile)
	}
	if paths.CommandFile != filepath.Join("/home/alice", ClaudeDirName, "commands", "docs.md") {
		t.Fatalf("unexpected command file: %s", paths.CommandFile)
	}
}

func TestDefaultPathsWindowsPrefersUserProfile(t *testing.T) {
	withEnv(t, map[string]string{
		"USERPROFILE": `C:\Users\alice`,
		"HOME":        "/home/alice",
	})

	paths, err := DefaultPaths(Windows)
	if err != nil {
		t.Fatalf("DefaultPaths error: %v", err)
	}
	if paths.InstallDir != filepath.Join(`C:\Users\alice`, InstallDirName) {
		t.Fatalf("unexpected install dir: %s", paths.InstallDir)
	}
}

func TestDefaultPathsWindowsFallsBackToHome(t *testing.T) {
	withEnv(t, map[string]string{"HOME": "/home/alice"})

	paths, err := DefaultPaths(Windows)
	if err != nil {
		t.Fatalf("DefaultPaths error: %v", err)
	}
	if paths.ClaudeDir != filepath.Join("/home/alice", ClaudeDirName) {
		t.Fatalf("unexpected claude dir: %s", paths.ClaudeDir)
	}
}

func TestDefaultPathsFallsBackToResolvedHome(t *testing.T) {
	withEnv(t, map[string]string{})
	origHome := homeDirFunc
	homeDirFunc = func() (string, error) { return "/resolved/home", nil }
	t.Cleanup(func() { homeDirFunc = origHome })

	paths, err := DefaultPaths(Linux)
	if err != nil {
		t.Fatalf("DefaultPaths error: %v", err)
	}
	if paths.InstallDir != filepath.Join("/resolved/home", InstallDirName) {
		t.Fatalf("unexpected install dir: %s", paths.InstallDir)
	}
}
