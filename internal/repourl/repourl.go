// Package repourl converts repository remote URLs between string and
// structured form. Each hosting provider is a declarative template
// record, so supporting a new provider is a table entry, not new control
// flow. Parsing is total: unrecognized input yields zero-valued fields,
// never an error.
package repourl

import (
	"regexp"
	"strings"
)

// Provider tags a repository hosting platform.
type Provider string

const (
	ProviderGitHub    Provider = "github"
	ProviderGitLab    Provider = "gitlab"
	ProviderBitbucket Provider = "bitbucket"
	ProviderAzure     Provider = "azure"
	// ProviderCustom is the catch-all for self-hosted or unknown hosts.
	ProviderCustom Provider = "custom"
)

// Visibility of a remote repository. Parsing cannot observe it, so it
// defaults to unknown.
type Visibility string

const (
	VisibilityPrivate  Visibility = "private"
	VisibilityPublic   Visibility = "public"
	VisibilityInternal Visibility = "internal"
	VisibilityUnknown  Visibility = "unknown"
)

// Remote is the structured form of a repository remote.
type Remote struct {
	Name  string   `json:"name,omitempty"`
	URL   string   `json:"url,omitempty"`
	Type  Provider `json:"type"`
	Host  string   `json:"host,omitempty"`
	Owner string   `json:"owner,omitempty"`
	Repo  string   `json:"repo,omitempty"`
	// Org is set only for Azure DevOps style remotes, whose paths carry
	// organization/project/_git/repo.
	Org        string     `json:"org,omitempty"`
	Visibility Visibility `json:"visibility,omitempty"`
}

// template holds the per-provider URL shapes. Placeholders: {host},
// {owner}, {repo}, {org}, {project}.
type template struct {
	defaultHost string
	https       string
	ssh         string
	web         string
}

var templates = map[Provider]template{
	ProviderGitHub: {
		defaultHost: "github.com",
		https:       "https://{host}/{owner}/{repo}.git",
		ssh:         "git@{host}:{owner}/{repo}.git",
		web:         "https://{host}/{owner}/{repo}",
	},
	ProviderGitLab: {
		defaultHost: "gitlab.com",
		https:       "https://{host}/{owner}/{repo}.git",
		ssh:         "git@{host}:{owner}/{repo}.git",
		web:         "https://{host}/{owner}/{repo}",
	},
	ProviderBitbucket: {
		defaultHost: "bitbucket.org",
		https:       "https://{host}/{owner}/{repo}.git",
		ssh:         "git@{host}:{owner}/{repo}.git",
		web:         "https://{host}/{owner}/{repo}",
	},
	ProviderAzure: {
		defaultHost: "dev.azure.com",
		https:       "https://{host}/{org}/{project}/_git/{repo}",
		ssh:         "git@ssh.{host}:v3/{org}/{project}/{repo}",
		web:         "https://{host}/{org}/{project}/_git/{repo}",
	},
	// The catch-all keeps the machine URL shapes but has no browse
	// template.
	ProviderCustom: {
		https: "https://{host}/{owner}/{repo}.git",
		ssh:   "git@{host}:{owner}/{repo}.git",
	},
}

// Classify maps a URL to its hosting provider by host substring. Total
// and idempotent; anything unrecognized is custom.
func Classify(url string) Provider {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "github.com"):
		return ProviderGitHub
	case strings.Contains(lower, "gitlab.com"):
		return ProviderGitLab
	case strings.Contains(lower, "bitbucket.org"):
		return ProviderBitbucket
	case strings.Contains(lower, "dev.azure.com"), strings.Contains(lower, "visualstudio.com"):
		return ProviderAzure
	default:
		return ProviderCustom
	}
}

var (
	sshRe      = regexp.MustCompile(`^(?:ssh://)?git@([^:/]+)[:/](.+?)(?:\.git)?/?$`)
	httpsRe    = regexp.MustCompile(`^https?://(?:[^@/]+@)?([^/]+)/(.+?)(?:\.git)?/?$`)
	azureSSHRe = regexp.MustCompile(`^(?:ssh://)?git@ssh\.([^:/]+)(?::v3)?[:/](?:v3/)?([^/]+)/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// Parse extracts structured fields from a remote URL. The provider type
// is inferred with Classify unless the caller pins it. All fields stay
// zero-valued when nothing matches; callers treat that as "not
// recognized", not as an error.
func Parse(url string) Remote {
	return ParseAs(url, Classify(url))
}

// ParseAs parses url assuming the given provider type.
func ParseAs(url string, typ Provider) Remote {
	remote := Remote{URL: url, Type: typ, Visibility: VisibilityUnknown}
	url = strings.TrimSpace(url)
	if url == "" {
		return remote
	}

	if typ == ProviderAzure {
		parseAzure(url, &remote)
		return remote
	}

	if m := sshRe.FindStringSubmatch(url); m != nil {
		remote.Host = m[1]
		fillOwnerRepo(m[2], &remote)
		return remote
	}
	if m := httpsRe.FindStringSubmatch(url); m != nil {
		remote.Host = m[1]
		fillOwnerRepo(m[2], &remote)
		return remote
	}
	return remote
}

// fillOwnerRepo splits a two-segment owner/repo path. Deeper paths
// (gitlab subgroups) fold everything before the last segment into the
// owner.
func fillOwnerRepo(path string, remote *Remote) {
	path = strings.Trim(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return
	}
	remote.Owner = path[:i]
	remote.Repo = strings.TrimSuffix(path[i+1:], ".git")
}

// parseAzure handles the four-segment Azure DevOps path:
// {org}/{project}/_git/{repo} over HTTPS, v3/{org}/{project}/{repo} over
// SSH. The project segment maps onto Owner so the common owner/repo pair
// stays meaningful across providers.
func parseAzure(url string, remote *Remote) {
	if m := azureSSHRe.FindStringSubmatch(url); m != nil {
		remote.Host = m[1]
		remote.Org = m[2]
		remote.Owner = m[3]
		remote.Repo = m[4]
		return
	}
	m := httpsRe.FindStringSubmatch(url)
	if m == nil {
		return
	}
	segments := strings.Split(strings.Trim(m[2], "/"), "/")
	if len(segments) != 4 || segments[2] != "_git" {
		return
	}
	remote.Host = m[1]
	remote.Org = segments[0]
	remote.Owner = segments[1]
	remote.Repo = strings.TrimSuffix(segments[3], ".git")
}

// Generate builds the canonical clone URL for the given provider and
// fields. protocol is "https" or "ssh"; anything else falls back to
// https.
func Generate(typ Provider, remote Remote, protocol string) string {
	tpl, ok := templates[typ]
	if !ok {
		tpl = templates[ProviderCustom]
	}
	shape := tpl.https
	if protocol == "ssh" && tpl.ssh != "" {
		shape = tpl.ssh
	}
	return substitute(shape, typ, remote, tpl)
}

// WebURL builds the browsing URL for the given provider, or "" when the
// provider has no web template (the custom catch-all).
func WebURL(typ Provider, remote Remote) string {
	tpl, ok := templates[typ]
	if !ok || tpl.web == "" {
		return ""
	}
	return substitute(tpl.web, typ, remote, tpl)
}

func substitute(shape string, typ Provider, remote Remote, tpl template) string {
	host := remote.Host
	if host == "" {
		host = tpl.defaultHost
	}
	r := strings.NewReplacer(
		"{host}", host,
		"{owner}", remote.Owner,
		"{repo}", remote.Repo,
		"{org}", remote.Org,
		"{project}", remote.Owner,
	)
	return r.Replace(shape)
}
