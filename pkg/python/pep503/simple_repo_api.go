// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package pep503 implements PEP 503 -- Simple Repository API.
//
// https://www.python.org/dev/peps/pep-0503/
package pep503

import (
	"bytes"
	"context"
	"crypto/md5"  //nolint:gosec // index checksums, not crypto
	"crypto/sha1" //nolint:gosec // index checksums, not crypto
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/descware/pyplan/pkg/htmlutil"
	"github.com/descware/pyplan/pkg/python/pep440"
	"github.com/descware/pyplan/pkg/python/pep508"
)

const PyPIBaseURL = "https://pypi.org/simple/"

// Client talks to a PEP 503 "simple" package index.  The zero value talks to
// PyPI.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string

	// Python, if set, filters out files whose data-requires-python
	// attribute excludes that interpreter version.
	Python *pep440.Version
}

func (c *Client) fillDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = PyPIBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.UserAgent == "" {
		c.UserAgent = "github.com/descware/pyplan/pkg/python/pep503"
	}
}

type HTTPError struct {
	Status     string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s", e.Status)
}

func (c Client) get(ctx context.Context, requestURL string) (_ *url.URL, _ []byte, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("GET %q => %w", requestURL, err)
		}
	}()
	c.fillDefaults()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, nil, err
	}
	if err := resp.Body.Close(); err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, &HTTPError{Status: resp.Status, StatusCode: resp.StatusCode}
	}

	if err := verifyFragmentChecksums(requestURL, content); err != nil {
		return nil, nil, err
	}
	return resp.Request.URL, content, nil
}

// verifyFragmentChecksums checks the content against any
// "#<algorithm>=<hexdigest>" entries in the URL fragment.
func verifyFragmentChecksums(requestURL string, content []byte) error {
	u, err := url.Parse(requestURL)
	if err != nil || u.Fragment == "" {
		return nil
	}
	keyvals, err := url.ParseQuery(u.Fragment)
	if err != nil {
		return nil
	}
	for algo, vals := range keyvals {
		var sum []byte
		switch algo {
		case "md5":
			s := md5.Sum(content) //nolint:gosec // index checksum
			sum = s[:]
		case "sha1":
			s := sha1.Sum(content) //nolint:gosec // index checksum
			sum = s[:]
		case "sha224":
			s := sha256.Sum224(content)
			sum = s[:]
		case "sha256":
			s := sha256.Sum256(content)
			sum = s[:]
		case "sha384":
			s := sha512.Sum384(content)
			sum = s[:]
		case "sha512":
			s := sha512.Sum512(content)
			sum = s[:]
		default:
			continue
		}
		for _, val := range vals {
			if hex.EncodeToString(sum) != val {
				return fmt.Errorf("checksum mismatch: %s: expected=%s actual=%s",
					algo, val, hex.EncodeToString(sum))
			}
		}
	}
	return nil
}

// A Link is one anchor element from an index page.
type Link struct {
	Text      string
	HRef      string
	DataAttrs map[string]string

	client Client
}

// Get downloads the link target, verifying any checksum in its URL fragment.
func (l Link) Get(ctx context.Context) ([]byte, error) {
	_, content, err := l.client.get(ctx, l.HRef)
	return content, err
}

func (c Client) getIndexLinks(ctx context.Context, requestURL string) ([]Link, error) {
	location, content, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var links []Link
	err = htmlutil.VisitHTML(doc, func(node *html.Node) error {
		if node.Type != html.ElementNode || node.Data != "a" {
			return nil
		}
		link := Link{
			Text:      htmlutil.InnerText(node),
			DataAttrs: make(map[string]string),
			client:    c,
		}
		for _, attr := range node.Attr {
			switch {
			case attr.Namespace == "" && attr.Key == "href":
				href, err := location.Parse(attr.Val)
				if err != nil {
					return err
				}
				link.HRef = href.String()
			case attr.Namespace == "" && strings.HasPrefix(attr.Key, "data-"):
				link.DataAttrs[attr.Key] = attr.Val
			}
		}
		links = append(links, link)
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return links, nil
}

// ListProjectFiles lists the distribution files the index has for a project.
func (c Client) ListProjectFiles(ctx context.Context, project string) ([]Link, error) {
	if !isLegalProjectName(project) {
		return nil, fmt.Errorf("illegal character in project name: %q", project)
	}
	c.fillDefaults()
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	// "All URLs which respond must end with a /."
	u.Path = path.Join(u.Path, pep508.CanonicalName(project)) + "/"
	rawLinks, err := c.getIndexLinks(ctx, u.String())
	if err != nil {
		return nil, err
	}
	links := make([]Link, 0, len(rawLinks))
	for _, link := range rawLinks {
		if c.Python != nil {
			if reqPy := link.DataAttrs["data-requires-python"]; reqPy != "" {
				spec, err := pep440.ParseSpecifier(reqPy)
				if err == nil && !spec.Match(*c.Python) {
					continue
				}
			}
		}
		links = append(links, link)
	}
	return links, nil
}

// ProjectVersions returns the distinct versions the index has files for,
// parsed from the distribution filenames.  Files with unparsable names are
// skipped.
func (c Client) ProjectVersions(ctx context.Context, project string) ([]pep440.Version, error) {
	links, err := c.ListProjectFiles(ctx, project)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(links))
	versions := make([]pep440.Version, 0, len(links))
	for _, link := range links {
		ver, ok := ParseDistFilename(link.Text, project)
		if !ok {
			continue
		}
		key := ver.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		versions = append(versions, *ver)
	}
	return versions, nil
}

var distSuffixes = []string{".whl", ".tar.gz", ".tar.bz2", ".zip", ".egg"}

// ParseDistFilename extracts the version from a distribution filename
// (wheel or sdist) belonging to the named project.
func ParseDistFilename(filename, project string) (*pep440.Version, bool) {
	base := filename
	binary := false // wheels and eggs carry trailing platform-tag parts
	matched := false
	for _, suffix := range distSuffixes {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix)
			binary = suffix == ".whl" || suffix == ".egg"
			matched = true
			break
		}
	}
	if !matched {
		return nil, false
	}
	// "name-version" for sdists, "name-version-pytag-abitag-plattag" for
	// wheels; the name part may use any separator spelling.
	parts := strings.Split(base, "-")
	canonical := pep508.CanonicalName(project)
	for i := 1; i < len(parts); i++ {
		if pep508.CanonicalName(strings.Join(parts[:i], "-")) != canonical {
			continue
		}
		verStr := parts[i]
		if !binary {
			verStr = strings.Join(parts[i:], "-")
		}
		ver, err := pep440.ParseVersion(verStr)
		if err != nil {
			return nil, false
		}
		return ver, true
	}
	return nil, false
}

func isLegalProjectName(name string) bool {
	if name == "" {
		return false
	}
	for _, char := range name {
		if !(('a' <= char && char <= 'z') ||
			('A' <= char && char <= 'Z') ||
			('0' <= char && char <= '9') ||
			char == '.' || char == '-' || char == '_') {
			return false
		}
	}
	return true
}
