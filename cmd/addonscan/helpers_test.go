// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/addonscan/addonscan/internal/config"
	"github.com/addonscan/addonscan/internal/testutil"
)

// ansiSequence matches SGR escapes so assertions hold on color terminals.
var ansiSequence = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type (
	// stubConfigProvider returns a fixed configuration or error.
	stubConfigProvider struct {
		cfg  *config.Config
		path string
		err  error
	}

	// testApp bundles an App with the buffers it writes to.
	testApp struct {
		*App
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}
)

func (p *stubConfigProvider) Load(_ context.Context, _ config.LoadOptions) (*config.Loaded, error) {
	if p.err != nil {
		return nil, p.err
	}
	cfg := p.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &config.Loaded{Config: cfg, Path: p.path}, nil
}

// newTestApp builds an App that writes to buffers and loads provider.
func newTestApp(t *testing.T, provider ConfigProvider) *testApp {
	t.Helper()

	if provider == nil {
		provider = &stubConfigProvider{}
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app, err := NewApp(Dependencies{
		Config: provider,
		Logger: log.NewWithOptions(stderr, log.Options{Level: log.InfoLevel}),
		Stdout: stdout,
		Stderr: stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	return &testApp{App: app, stdout: stdout, stderr: stderr}
}

// run executes the command tree with args.
func (a *testApp) run(t *testing.T, args ...string) error {
	t.Helper()

	rootCmd := newRootCommand(a.App)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)
	rootCmd.SilenceErrors = true
	return rootCmd.ExecuteContext(context.Background())
}

// writeAddonsTree creates the fixture tree shared by the command tests:
//
//	AddonA/AddonA.txt                      valid add-on
//	AddonA/Libs/LibBundled/LibBundled.txt  bundled library
//	LibFoo/LibFoo.txt                      library
//	Broken/Renamed.txt                     name mismatch
func writeAddonsTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	testutil.MustWriteManifest(t, root, "AddonA", "AddonA",
		"## Title: Addon A",
		"## Author: |cFF0000Alice|r",
		"## Version: 1.2",
		"## APIVersion: 101041",
		"## SavedVariables: AddonASV",
	)
	testutil.MustWriteManifest(t, root, "AddonA/Libs/LibBundled", "LibBundled",
		"## Title: LibBundled",
		"## IsLibrary: true",
	)
	testutil.MustWriteManifest(t, root, "LibFoo", "LibFoo",
		"## Title: LibFoo",
		"## IsLibrary: true",
	)
	testutil.MustWriteManifest(t, root, "Broken", "Renamed",
		"## Title: Broken Addon",
	)
	return root
}

// plain strips terminal styling from s.
func plain(s string) string {
	return ansiSequence.ReplaceAllString(s, "")
}

// out returns stdout without styling.
func (a *testApp) out() string {
	return plain(a.stdout.String())
}

// errOut returns stderr without styling.
func (a *testApp) errOut() string {
	return plain(a.stderr.String())
}
