package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/koksalmehmet/atlas/internal/cli/flags"
	"github.com/koksalmehmet/atlas/internal/config"
	"github.com/koksalmehmet/atlas/internal/detect"
	"github.com/koksalmehmet/atlas/starter"
)

func init() {
	Register(&Command{
		Name:        "mcp-config",
		Description: "Generate MCP server configuration for detected projects",
		Run:         RunMCPConfig,
	})
}

// MCPConfigOptions contains the configuration for the mcp-config command.
type MCPConfigOptions struct {
	For     string
	Root    string
	Install bool
}

// MCPServerConfig represents an MCP server entry in the config.
type MCPServerConfig struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// MCPConfig represents the full MCP configuration structure.
type MCPConfig struct {
	MCPServers map[string]MCPServerConfig `json:"mcpServers"`
}

// RunMCPConfig executes the mcp-config command with parsed arguments.
func RunMCPConfig(args []string) error {
	fs := flag.NewFlagSet("mcp-config", flag.ContinueOnError)
	forTarget := fs.String("for", "", "target tool: claude-code, claude-desktop, cursor")
	root := flags.AddRootFlag(fs)
	install := fs.Bool("install", false, "install config to target's config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *forTarget == "" {
		return fmt.Errorf("--for flag is required. Use: claude-code, claude-desktop, or cursor")
	}
	return ExecuteMCPConfig(MCPConfigOptions{For: *forTarget, Root: *root, Install: *install})
}

// ExecuteMCPConfig generates or installs MCP configuration, one server
// entry per detected project.
func ExecuteMCPConfig(opts MCPConfigOptions) error {
	validTargets := map[string]bool{
		"claude-code":    true,
		"claude-desktop": true,
		"cursor":         true,
	}
	if !validTargets[opts.For] {
		return fmt.Errorf("invalid target %q. Use: claude-code, claude-desktop, or cursor", opts.For)
	}

	rootPath, err := filepath.Abs(opts.Root)
	if err != nil {
		return fmt.Errorf("resolve workspace root: %w", err)
	}
	if _, err := os.Stat(rootPath); err != nil {
		return fmt.Errorf("root %s: %w", rootPath, err)
	}

	detector := detect.New()
	detector.SetIgnoreGlobs(config.IgnoreGlobs(rootPath))
	result := detector.Detect(rootPath)
	mcpConfig, err := generateMCPConfig(result)
	if err != nil {
		return err
	}

	if opts.Install {
		return installConfig(opts.For, mcpConfig, rootPath)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(mcpConfig)
}

// generateMCPConfig renders one server entry per project from the
// embedded template.
func generateMCPConfig(result detect.Result) (MCPConfig, error) {
	tpl, err := starter.Get("mcp-server.json")
	if err != nil {
		return MCPConfig{}, fmt.Errorf("load template: %w", err)
	}
	servers := make(map[string]MCPServerConfig, len(result.Projects))
	for _, project := range result.Projects {
		rendered := starter.Apply(tpl, map[string]string{
			"command": "npx",
			"server":  "@modelcontextprotocol/server-filesystem",
			"path":    project.AbsolutePath,
		})
		var entry MCPServerConfig
		if err := json.Unmarshal([]byte(rendered), &entry); err != nil {
			return MCPConfig{}, fmt.Errorf("render server entry for %s: %w", project.Name, err)
		}
		servers[project.Name] = entry
	}
	return MCPConfig{MCPServers: servers}, nil
}

// installConfig merges the generated servers into the target's config file.
func installConfig(target string, mcpConfig MCPConfig, rootPath string) error {
	configPath, err := getConfigPath(target, rootPath)
	if err != nil {
		return err
	}

	existingConfig := make(map[string]interface{})
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := json.Unmarshal(data, &existingConfig); err != nil {
			return fmt.Errorf("parse existing config %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read config %s: %w", configPath, err)
	}

	mcpServers, ok := existingConfig["mcpServers"].(map[string]interface{})
	if !ok {
		mcpServers = make(map[string]interface{})
	}
	for name, server := range mcpConfig.MCPServers {
		mcpServers[name] = server
	}
	existingConfig["mcpServers"] = mcpServers

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	output, err := json.MarshalIndent(existingConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, output, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", configPath, err)
	}
	fmt.Fprintf(os.Stderr, "Installed %d MCP servers to %s\n", len(mcpConfig.MCPServers), configPath)
	return nil
}

// getConfigPath returns the configuration file path for the given target.
func getConfigPath(target, rootPath string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	switch target {
	case "claude-code":
		return filepath.Join(rootPath, ".mcp.json"), nil
	case "claude-desktop":
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json"), nil
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "Claude", "claude_desktop_config.json"), nil
		default: // Linux and others
			return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json"), nil
		}
	case "cursor":
		return filepath.Join(home, ".cursor", "mcp.json"), nil
	default:
		return "", fmt.Errorf("unknown target: %s", target)
	}
}
