package app

import (
	"bytes"
	"testing"

	"github.com/vk/dynrefl/internal/config"
	"github.com/vk/dynrefl/internal/hcl"
)

// SetupAppTest builds an App over the HCL loader with the given config and
// modules, returning the buffer that receives its report. Logs are
// discarded.
func SetupAppTest(t *testing.T, cfg Config, modules ...Module) (*App, *bytes.Buffer) {
	t.Helper()
	c, err := NewConfig(cfg)
	if err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	out := &bytes.Buffer{}
	var loader config.Loader = hcl.NewLoader()
	return NewApp(out, &bytes.Buffer{}, c, loader, modules...), out
}
