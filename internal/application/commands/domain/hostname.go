package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var labelPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// NormalizeHostname reduces user input such as "https://Www.Example.com:443/about"
// to a bare lowercase hostname and checks it is a valid multi-label name.
func NormalizeHostname(raw string) (string, error) {
	host := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if i := strings.LastIndex(host, "@"); i >= 0 {
		host = host[i+1:]
	}
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	host = strings.TrimSuffix(host, ".")

	if host == "" {
		return "", fmt.Errorf("hostname is empty")
	}
	if len(host) > 253 {
		return "", fmt.Errorf("hostname is longer than 253 characters")
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return "", fmt.Errorf("hostname %q needs at least two labels", host)
	}
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 || !labelPattern.MatchString(label) {
			return "", fmt.Errorf("hostname %q has an invalid label %q", host, label)
		}
	}
	return host, nil
}

// underBase reports whether host is base itself or one of its subdomains.
func underBase(host, base string) bool {
	base = strings.ToLower(strings.TrimSuffix(base, "."))
	return host == base || strings.HasSuffix(host, "."+base)
}
