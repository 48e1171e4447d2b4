package terminal

import "testing"

func TestIsInteractiveUnderTestHarness(t *testing.T) {
	// go test never attaches a TTY to the test binary.
	if IsInteractive() {
		t.Fatal("expected IsInteractive to be false under go test")
	}
}
