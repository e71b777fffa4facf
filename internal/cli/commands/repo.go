package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/koksalmehmet/atlas/internal/cli/flags"
	"github.com/koksalmehmet/atlas/internal/gitutil"
	"github.com/koksalmehmet/atlas/internal/repourl"
)

func init() {
	Register(&Command{
		Name:        "repo",
		Description: "Parse repository remotes into canonical clone and web URLs",
		Run:         RunRepo,
	})
}

// RepoOptions contains the configuration for the repo command.
type RepoOptions struct {
	Root     string
	URL      string // parse a single URL instead of the workspace remotes
	Protocol string // https or ssh for generated clone URLs
}

// RunRepo executes the repo command with parsed arguments.
func RunRepo(args []string) error {
	fs := flag.NewFlagSet("repo", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	url := fs.String("url", "", "parse this URL instead of the configured remotes")
	protocol := fs.String("protocol", "https", "protocol for generated clone URLs (https or ssh)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ExecuteRepo(RepoOptions{Root: *root, URL: *url, Protocol: *protocol})
}

// repoReport is the printed form of one analyzed remote.
type repoReport struct {
	Remote   repourl.Remote `json:"remote"`
	CloneURL string         `json:"cloneUrl,omitempty"`
	WebURL   string         `json:"webUrl,omitempty"`
}

// ExecuteRepo analyzes remotes with the given options.
func ExecuteRepo(opts RepoOptions) error {
	if opts.Protocol != "https" && opts.Protocol != "ssh" {
		return fmt.Errorf("protocol must be https or ssh, got %q", opts.Protocol)
	}

	var reports []repoReport
	if opts.URL != "" {
		reports = append(reports, buildReport(repourl.Remote{}, opts.URL, opts.Protocol))
	} else {
		rootPath, err := filepath.Abs(opts.Root)
		if err != nil {
			return fmt.Errorf("resolve root: %w", err)
		}
		// --root may point anywhere inside the checkout; remotes are
		// configured at the repository root.
		repoRoot, err := gitutil.GetRepoRoot(rootPath)
		if err != nil {
			return fmt.Errorf("%s is not a git repository; pass --url to parse a URL directly", rootPath)
		}
		refs, err := gitutil.ListRemotes(repoRoot)
		if err != nil {
			return fmt.Errorf("list remotes: %w", err)
		}
		for _, ref := range refs {
			report := buildReport(repourl.Remote{Name: ref.Name}, ref.URL, opts.Protocol)
			reports = append(reports, report)
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}

func buildReport(base repourl.Remote, url, protocol string) repoReport {
	remote := repourl.Parse(url)
	remote.Name = base.Name
	report := repoReport{Remote: remote}
	// An all-empty parse means the URL was not recognized; canonical
	// URLs would be meaningless.
	if remote.Repo == "" {
		return report
	}
	report.CloneURL = repourl.Generate(remote.Type, remote, protocol)
	report.WebURL = repourl.WebURL(remote.Type, remote)
	return report
}
