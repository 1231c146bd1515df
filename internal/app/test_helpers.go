package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/specialistvlad/burstplan/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. Logs and the
// report share the returned buffer unless opts redirect the logs.
func SetupAppTest(t *testing.T, cfg *Config, loader config.Loader, opts ...Option) (*App, *testutil.SafeBuffer) {
	t.Helper()

	buf := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(buf, cfg, loader, opts...)

	t.Cleanup(func() {
		if os.Getenv("BPLAN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})

	return testApp, buf
}
