package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/stats"
)

const chat = `12/31/23, 11:58 PM - Messages and calls are end-to-end encrypted.
12/31/23, 11:59 PM - Bob: happy new year
1/1/24, 12:01 AM - Alice: you too
`

func writeFixture(t *testing.T, text string) (chatPath string) {
	t.Helper()
	dir := t.TempDir()

	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte("date_order = \"auto\"\nlog_level = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := configPath
	configPath = cfg
	t.Cleanup(func() { configPath = old })

	chatPath = filepath.Join(dir, "chat.txt")
	if err := os.WriteFile(chatPath, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return chatPath
}

func TestOpenSession(t *testing.T) {
	s, err := openSession(writeFixture(t, chat))
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer s.close()

	if s.result.Order != parse.OrderMDY {
		t.Errorf("order = %q, want mdy", s.result.Order)
	}
	if s.table.Len() != 3 {
		t.Errorf("records = %d, want 3", s.table.Len())
	}
	if !s.export.Plain {
		t.Error("text file not marked plain")
	}

	if u, err := s.resolveUser(""); err != nil || u != stats.Overall {
		t.Errorf("resolveUser(\"\") = %q, %v", u, err)
	}
	if u, err := s.resolveUser("Alice"); err != nil || u != "Alice" {
		t.Errorf("resolveUser(Alice) = %q, %v", u, err)
	}
	if _, err := s.resolveUser("Mallory"); err == nil {
		t.Error("unknown user accepted")
	}
}

func TestOpenSessionEmpty(t *testing.T) {
	s, err := openSession(writeFixture(t, "nothing to see here\n"))
	if !errors.Is(err, parse.ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if s == nil || s.table.Len() != 0 {
		t.Fatal("empty chat should still give a session")
	}
	s.close()

	if _, err := requireMessages(openSession(writeFixture(t, ""))); !errors.Is(err, parse.ErrEmptyInput) {
		t.Errorf("requireMessages err = %v", err)
	}
}

func TestUsersCommand(t *testing.T) {
	path := writeFixture(t, chat)

	cmd := usersCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("users: %v", err)
	}
	if got, want := out.String(), stats.Overall+"\nAlice\nBob\n"; got != want {
		t.Errorf("users output = %q, want %q", got, want)
	}
}

func TestInspectCommand(t *testing.T) {
	path := writeFixture(t, chat)

	cmd := inspectCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"Format:      android", "Date order:  mdy", "Messages:    3", "Users:       2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("inspect output missing %q:\n%s", want, out.String())
		}
	}
}
