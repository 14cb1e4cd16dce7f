package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"coppo/internal/logging"
)

func TestQuietSuppressesNonErrorChannels(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := logging.NewWithWriters(true, &out, &errOut)

	logger.Info("building %s", "demo")
	logger.Warn("missing license field")
	logger.Success("done")

	if out.Len() != 0 {
		t.Fatalf("expected no stdout output in quiet mode, got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected no stderr output in quiet mode, got %q", errOut.String())
	}
}

func TestQuietNeverSuppressesErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := logging.NewWithWriters(true, &out, &errOut)

	logger.Error("compiler exited with status %d", 1)

	if got := errOut.String(); !strings.Contains(got, "compiler exited with status 1") {
		t.Fatalf("expected error on stderr, got %q", got)
	}
	if out.Len() != 0 {
		t.Fatalf("expected errors on stderr only, stdout got %q", out.String())
	}
}

func TestChannelRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := logging.NewWithWriters(false, &out, &errOut)

	logger.Info("info line")
	logger.Success("success line")
	logger.Warn("warn line")
	logger.Error("error line")

	stdout := out.String()
	stderr := errOut.String()
	if !strings.Contains(stdout, "info line") || !strings.Contains(stdout, "success line") {
		t.Fatalf("expected info and success on stdout, got %q", stdout)
	}
	if strings.Contains(stdout, "warn line") || strings.Contains(stdout, "error line") {
		t.Fatalf("warn/error leaked to stdout: %q", stdout)
	}
	if !strings.Contains(stderr, "warn line") || !strings.Contains(stderr, "error line") {
		t.Fatalf("expected warn and error on stderr, got %q", stderr)
	}
}

func TestInitFirstValueWins(t *testing.T) {
	first := logging.Init(true)
	second := logging.Init(false)

	if first != second {
		t.Fatal("expected Init to return the same logger instance")
	}
	if !second.Quiet() {
		t.Fatal("expected the first Init value to win")
	}
	if logging.Default() != first {
		t.Fatal("expected Default to return the initialized logger")
	}
}
