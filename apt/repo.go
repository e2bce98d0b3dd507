// Package apt loads stanza files from APT repositories, local files and stdin.
package apt

import (
	"fmt"
	"strings"
)

// RepoConfig defines a source APT repository to read Packages indices from.
// It supports both:
// 1. Flat Repositories: Just a URL (Suite is empty).
// 2. Standard Repositories: URL + Suite + Component + Architectures (e.g., deb http://archive.ubuntu.com/ubuntu focal main).
type RepoConfig struct {
	URL           string
	Suite         string
	Component     string
	Architectures []string
}

// IndexURLs returns the URLs of the Packages.gz indices of the repository,
// one per architecture for a standard repository.
func (r RepoConfig) IndexURLs() ([]string, error) {
	if r.URL == "" {
		return nil, fmt.Errorf("repository url required")
	}
	baseURL := r.URL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	if r.Suite == "" {
		// Flat repository
		return []string{baseURL + "Packages.gz"}, nil
	}

	if len(r.Architectures) == 0 {
		return nil, fmt.Errorf("architectures required for suite %s", r.Suite)
	}
	component := r.Component
	if component == "" {
		component = "main"
	}
	urls := make([]string, 0, len(r.Architectures))
	for _, arch := range r.Architectures {
		// Standard layout: dists/<suite>/<component>/binary-<arch>/Packages.gz
		urls = append(urls, fmt.Sprintf("%sdists/%s/%s/binary-%s/Packages.gz", baseURL, r.Suite, component, arch))
	}
	return urls, nil
}
