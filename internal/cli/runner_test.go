package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coppo/internal/addon"
	"coppo/internal/cli"
	"coppo/internal/manifest"
)

type fakeAddon struct {
	name        string
	description string
	args        []addon.Arg
	err         error

	runs   int
	gotCfg *manifest.Config
	gotInv *addon.Invocation
}

func (f *fakeAddon) Name() string        { return f.name }
func (f *fakeAddon) Version() string     { return "" }
func (f *fakeAddon) Description() string { return f.description }
func (f *fakeAddon) Args() []addon.Arg   { return f.args }

func (f *fakeAddon) Run(cfg *manifest.Config, inv *addon.Invocation) error {
	f.runs++
	f.gotCfg = cfg
	f.gotInv = inv
	return f.err
}

func execute(t *testing.T, r *cli.Runner, args ...string) error {
	t.Helper()
	root := r.Build()
	root.SetArgs(args)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root.Execute()
}

func TestBuildProducesOneSubcommandPerAddon(t *testing.T) {
	first := &fakeAddon{name: "first", description: "first addon"}
	second := &fakeAddon{name: "second"}
	root := cli.New().WithDir(t.TempDir()).Register(first).Register(second).Build()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	joined := strings.Join(names, " ")
	if !strings.Contains(joined, "first") || !strings.Contains(joined, "second") {
		t.Fatalf("expected both subcommands, got %v", names)
	}
}

func TestDispatchInvokesOnlyMatchingAddon(t *testing.T) {
	first := &fakeAddon{name: "first"}
	second := &fakeAddon{name: "second"}
	r := cli.New().WithDir(t.TempDir()).Register(first).Register(second)

	if err := execute(t, r, "second"); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if first.runs != 0 {
		t.Fatalf("expected first addon untouched, ran %d times", first.runs)
	}
	if second.runs != 1 {
		t.Fatalf("expected second addon to run once, ran %d times", second.runs)
	}
}

func TestDuplicateNamesKeepFirstRegistration(t *testing.T) {
	first := &fakeAddon{name: "twin"}
	shadow := &fakeAddon{name: "twin"}
	r := cli.New().WithDir(t.TempDir()).Register(first).Register(shadow)

	root := r.Build()
	warnings := r.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "twin") {
		t.Fatalf("expected one duplicate warning naming the addon, got %v", warnings)
	}

	twins := 0
	for _, cmd := range root.Commands() {
		if cmd.Name() == "twin" {
			twins++
		}
	}
	if twins != 1 {
		t.Fatalf("expected exactly one twin subcommand, got %d", twins)
	}

	root.SetArgs([]string{"twin"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if first.runs != 1 || shadow.runs != 0 {
		t.Fatalf("expected the first registration to win: first=%d shadow=%d", first.runs, shadow.runs)
	}
}

func TestNoSubcommandShowsHelpWithoutRunningAddons(t *testing.T) {
	a := &fakeAddon{name: "noop"}
	r := cli.New().WithDir(t.TempDir()).Register(a)

	if err := execute(t, r); err != nil {
		t.Fatalf("expected help to succeed, got %v", err)
	}
	if a.runs != 0 {
		t.Fatalf("expected no addon execution, ran %d times", a.runs)
	}
}

func TestMissingManifestYieldsDefaultConfig(t *testing.T) {
	a := &fakeAddon{name: "noop"}
	r := cli.New().WithDir(t.TempDir()).Register(a)

	if err := execute(t, r, "noop"); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if a.gotCfg == nil || !a.gotCfg.IsEmpty() {
		t.Fatalf("expected the empty default config, got %+v", a.gotCfg)
	}
}

func TestLoadedManifestReachesAddon(t *testing.T) {
	dir := t.TempDir()
	content := "[project]\nname = \"demo\"\nversion = \"0.1.0\"\n"
	if err := os.WriteFile(filepath.Join(dir, manifest.Filename), []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	a := &fakeAddon{name: "noop"}
	r := cli.New().WithDir(dir).Register(a)

	if err := execute(t, r, "noop"); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if a.gotCfg == nil || a.gotCfg.Project.Name != "demo" || a.gotCfg.Project.Version != "0.1.0" {
		t.Fatalf("expected loaded manifest, got %+v", a.gotCfg)
	}
}

func TestMalformedManifestIsTerminal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, manifest.Filename), []byte("[project\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	a := &fakeAddon{name: "noop"}
	r := cli.New().WithDir(dir).Register(a)

	err := execute(t, r, "noop")
	var parseErr *manifest.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if a.runs != 0 {
		t.Fatalf("expected no addon execution on parse failure, ran %d times", a.runs)
	}
}

func TestAddonErrorSurfaces(t *testing.T) {
	a := &fakeAddon{name: "fail", err: errors.New("boom")}
	r := cli.New().WithDir(t.TempDir()).Register(a)

	err := execute(t, r, "fail")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected the addon error to surface, got %v", err)
	}
}

func TestUnknownFlagIsAParseError(t *testing.T) {
	a := &fakeAddon{name: "noop"}
	r := cli.New().WithDir(t.TempDir()).Register(a)

	if err := execute(t, r, "noop", "--bogus"); err == nil {
		t.Fatal("expected parse error for unknown flag")
	}
	if a.runs != 0 {
		t.Fatalf("expected no addon execution, ran %d times", a.runs)
	}
}

func TestArgumentBinding(t *testing.T) {
	a := &fakeAddon{
		name: "scaffold",
		args: []addon.Arg{
			{Name: "path", Positional: true, Required: true},
			{Name: "name", Shorthand: "n", Usage: "override"},
			{Name: "force", Bool: true},
		},
	}
	r := cli.New().WithDir(t.TempDir()).Register(a)

	if err := execute(t, r, "scaffold", "foo", "--name", "bar", "--force"); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got := a.gotInv.String("path"); got != "foo" {
		t.Fatalf("unexpected positional binding: %q", got)
	}
	if got := a.gotInv.String("name"); got != "bar" {
		t.Fatalf("unexpected flag binding: %q", got)
	}
	if !a.gotInv.Bool("force") {
		t.Fatal("expected boolean flag to be set")
	}
	if !a.gotInv.Changed("path") || !a.gotInv.Changed("name") {
		t.Fatal("expected Changed to report supplied arguments")
	}
}

func TestMissingRequiredPositionalFails(t *testing.T) {
	a := &fakeAddon{
		name: "scaffold",
		args: []addon.Arg{{Name: "path", Positional: true, Required: true}},
	}
	r := cli.New().WithDir(t.TempDir()).Register(a)

	if err := execute(t, r, "scaffold"); err == nil {
		t.Fatal("expected error for missing required positional")
	}
	if a.runs != 0 {
		t.Fatalf("expected no addon execution, ran %d times", a.runs)
	}
}

func TestVariadicArgumentsReachRest(t *testing.T) {
	a := &fakeAddon{
		name: "exec",
		args: []addon.Arg{{Name: "args", Positional: true, Variadic: true}},
	}
	r := cli.New().WithDir(t.TempDir()).Register(a)

	if err := execute(t, r, "exec", "--", "one", "two"); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	rest := a.gotInv.Rest()
	if len(rest) != 2 || rest[0] != "one" || rest[1] != "two" {
		t.Fatalf("unexpected rest arguments: %v", rest)
	}
}
