package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/d3flow/mindflow/utils"
)

func captureOutput(f func()) string {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	utils.SetUserOutput(w)
	f()
	w.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		log.Printf("buf.ReadFrom failed: %v", err)
	}
	os.Stdout = orig
	utils.SetUserOutput(orig)
	return buf.String()
}

// runCLI executes the root command with args, capturing stdout and any exit
// code.
func runCLI(t *testing.T, args ...string) (string, int) {
	t.Helper()
	origExit := exit
	exitCode := 0
	exit = func(code int) {
		exitCode = code
		panic("exit")
	}
	defer func() { exit = origExit }()

	out := captureOutput(func() {
		defer func() {
			if err := recover(); err != nil && err != "exit" {
				t.Errorf("panic occurred: %v", err)
			}
		}()
		cmd := NewRootCmd()
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			log.Printf("Execute failed: %v", err)
		}
	})
	return out, exitCode
}

func TestSampleCommand(t *testing.T) {
	out, code := runCLI(t, "sample", "gantt")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "task,start_date,end_date") {
		t.Errorf("expected gantt sample header, got %q", out)
	}

	out, code = runCLI(t, "sample", "flowchart", "--workflow", "review")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "flowchart LR") {
		t.Errorf("expected review workflow, got %q", out)
	}
}

func TestSampleCommand_UnknownType(t *testing.T) {
	_, code := runCLI(t, "sample", "pie")
	if code == 0 {
		t.Fatal("expected non-zero exit for unknown type")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "map.csv")
	if err := os.WriteFile(src, []byte("Root,Child\nRoot,Other\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "map.html")

	_, code := runCLI(t, "render", src, "--type", "mindmap", "--out", out)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	html, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "map.csv") {
		t.Errorf("expected title in rendered HTML")
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plan.csv")
	if err := os.WriteFile(src, []byte("task,start,end\nKickoff,2026-01-05,2026-01-09\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, code := runCLI(t, "validate", src)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, `"valid": true`) {
		t.Errorf("expected valid result, got %q", out)
	}
}

func TestValidateCommand_InvalidSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.mmd")
	if err := os.WriteFile(src, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	_, code := runCLI(t, "validate", src)
	if code == 0 {
		t.Fatal("expected non-zero exit for invalid source")
	}
}

func TestValidateCommand_Document(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "diagram.yaml")
	body := "title: Plan\ntype: mindmap\nsource: |\n  Root,Child\n"
	if err := os.WriteFile(doc, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out, code := runCLI(t, "validate", doc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Validation OK") {
		t.Errorf("expected OK message, got %q", out)
	}
}

func TestGraphCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "flow.mmd")
	body := "flowchart TD\n    A[Start] --> B[End]\n"
	if err := os.WriteFile(src, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, code := runCLI(t, "graph", src)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "graph TD") {
		t.Errorf("expected mermaid output, got %q", out)
	}

	out, code = runCLI(t, "graph", src, "--format", "dot")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "digraph") {
		t.Errorf("expected dot output, got %q", out)
	}
}
