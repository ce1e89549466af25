// Package remote derives hosting-platform browsing URLs from git remote URLs.
package remote

import (
	"fmt"
	"regexp"
	"strings"

	krerrors "github.com/michaeldyrynda/kr/internal/errors"
	"github.com/michaeldyrynda/kr/internal/utils"
)

// DefaultHosts are the hosting domains recognized when none are configured.
var DefaultHosts = []string{"github.com"}

// Matches git@host:slug.git, ssh://git@host[:port]/slug.git and
// http(s)://[user@]host[:port]/slug.git. The port is dropped.
var remoteRe = regexp.MustCompile(`^(?:git@([^:/]+):|ssh://git@([^:/]+)(?::\d+)?/|https?://(?:[^@/]+@)?([^:/]+)(?::\d+)?/)(.+)\.git/?$`)

// Link is a repository on a recognized hosting platform.
type Link struct {
	Host string
	// Slug is the owner/repository part, e.g. "org/repo".
	Slug string
}

// Parse validates a remote URL against the recognized hosts and extracts the
// repository it points at. An empty URL yields ErrNoRemote; anything that is
// not a .git URL under one of the hosts yields ErrUnrecognizedRemote.
func Parse(url string, hosts []string) (*Link, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, krerrors.ErrNoRemote
	}
	if len(hosts) == 0 {
		hosts = DefaultHosts
	}

	m := remoteRe.FindStringSubmatch(url)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", krerrors.ErrUnrecognizedRemote, url)
	}

	host := strings.ToLower(m[1] + m[2] + m[3])
	slug := strings.Trim(m[4], "/")
	if !strings.Contains(slug, "/") || !knownHost(host, hosts) {
		return nil, fmt.Errorf("%w: %s", krerrors.ErrUnrecognizedRemote, url)
	}

	return &Link{Host: host, Slug: slug}, nil
}

func knownHost(host string, hosts []string) bool {
	for _, h := range hosts {
		if strings.EqualFold(strings.TrimSpace(h), host) {
			return true
		}
	}
	return false
}

// BaseURL returns the HTTPS browsing URL of the repository.
func (l *Link) BaseURL() string {
	return fmt.Sprintf("https://%s/%s", l.Host, l.Slug)
}

// CompareURL returns the page that opens a pull request for the post's
// review branch against the main branch.
func (l *Link) CompareURL(postPath string) string {
	return fmt.Sprintf("%s/compare/%s?expand=1", l.BaseURL(), utils.PostBranch(postPath))
}

// RepoName returns the last path element of the slug.
func (l *Link) RepoName() string {
	return utils.ExtractRepoName(l.Slug)
}
