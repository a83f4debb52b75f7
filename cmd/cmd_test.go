package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reply.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "scenecoach ") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestValidateAcceptsQuestions(t *testing.T) {
	path := writeFile(t, "What does Maria want?\nWhy does she wait?\n")
	out, err := run(t, "validate", "--style", "socratic", "--json=false", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok (socratic)") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestValidateRejectsStatements(t *testing.T) {
	path := writeFile(t, "Maria is hiding something.\n")
	_, err := run(t, "validate", "--style", "socratic", "--json=false", path)
	if err == nil {
		t.Fatal("expected a violation error")
	}
	if !strings.Contains(err.Error(), "not_a_question") {
		t.Errorf("expected not_a_question, got %v", err)
	}
}

func TestValidateJSON(t *testing.T) {
	path := writeFile(t, "Quick read: the scene turns on silence.\nWhat is Maria waiting for?\n")
	out, err := run(t, "validate", "--style", "director", "--json", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, `"valid": true`) || !strings.Contains(out, `"has_quick_read": true`) {
		t.Errorf("unexpected JSON %q", out)
	}
}

func TestRunsPruneRejectsNonPositiveAge(t *testing.T) {
	_, err := run(t, "runs", "prune", "--older-than", "0s")
	if err == nil {
		t.Fatal("expected error for zero age")
	}
}
