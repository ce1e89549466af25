package utils

import (
	"strings"
)

// PostSuffix is appended to a post path to form its review branch name.
const PostSuffix = ".kp"

// TrimPostPath normalises a repository-relative post path: surrounding
// slashes and a trailing .kp are removed.
func TrimPostPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	return strings.TrimSuffix(path, PostSuffix)
}

// PostBranch returns the branch knowledge_repo uses for a post,
// e.g. "examples/test" becomes "examples/test.kp".
func PostBranch(path string) string {
	return TrimPostPath(path) + PostSuffix
}

// ExtractRepoName extracts the repository name from a git URL or slug
func ExtractRepoName(url string) string {
	if strings.HasPrefix(url, "git@") {
		url = strings.TrimPrefix(url, "git@")
		parts := strings.SplitN(url, ":", 2)
		if len(parts) == 2 {
			url = parts[1]
		}
	}

	for _, scheme := range []string{"https://", "http://", "ssh://"} {
		url = strings.TrimPrefix(url, scheme)
	}

	url = strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// IsLocalPath reports whether a repository setting refers to a directory on
// disk rather than a URI such as postgresql://host/db.
func IsLocalPath(repo string) bool {
	return repo != "" && !strings.Contains(repo, "://")
}
