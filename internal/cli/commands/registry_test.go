package commands

import "testing"

func TestBuiltinCommandsRegistered(t *testing.T) {
	for _, name := range []string{"detect", "init", "repo", "history", "mcp-config"} {
		cmd, ok := Get(name)
		if !ok {
			t.Errorf("command %s not registered", name)
			continue
		}
		if cmd.Run == nil {
			t.Errorf("command %s has no run function", name)
		}
		if cmd.Description == "" {
			t.Errorf("command %s has no description", name)
		}
	}
}

func TestGetUnknownCommand(t *testing.T) {
	if _, ok := Get("does-not-exist"); ok {
		t.Error("expected lookup miss")
	}
}

func TestListSortedAndUnique(t *testing.T) {
	cmds := List()
	if len(cmds) < 5 {
		t.Fatalf("expected at least the builtin commands, got %d", len(cmds))
	}
	seen := make(map[string]bool)
	for i, cmd := range cmds {
		if seen[cmd.Name] {
			t.Errorf("duplicate command %s in listing", cmd.Name)
		}
		seen[cmd.Name] = true
		if i > 0 && cmds[i-1].Name > cmd.Name {
			t.Errorf("listing not sorted: %s before %s", cmds[i-1].Name, cmd.Name)
		}
	}
}
