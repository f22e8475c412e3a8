// Package address performs a syntactic sanity check of email addresses.
// It does not verify that the mailbox exists or that the domain has MX
// records.
package address

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

const (
	domainTimeout = 200 * time.Millisecond
	matchTimeout  = 250 * time.Millisecond
)

var addressPattern = regexp.MustCompile(`(?i)^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// lookupProfile is idna.Lookup without the STD3 ASCII rules, so host names
// such as "my_host.com" are accepted. Hyphen, joiner and bidi checks stay on.
var lookupProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.StrictDomainName(false),
)

// IsValid reports whether candidate looks like an email address. Unicode
// domains are converted to their ASCII form first, so "user@exämple.com"
// is accepted.
func IsValid(candidate string) bool {
	if strings.TrimSpace(candidate) == "" {
		return false
	}

	normalized, err := withTimeout(domainTimeout, func() (string, error) {
		return NormalizeDomain(candidate)
	})
	if err != nil {
		return false
	}

	matched, err := withTimeout(matchTimeout, func() (bool, error) {
		return addressPattern.MatchString(normalized), nil
	})
	return err == nil && matched
}

// NormalizeDomain converts the part after the last '@' to its IDNA ASCII
// form. Addresses without '@' are returned unchanged.
func NormalizeDomain(addr string) (string, error) {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return addr, nil
	}
	domain, err := lookupProfile.ToASCII(addr[at+1:])
	if err != nil {
		return "", err
	}
	return addr[:at+1] + domain, nil
}

// withTimeout runs fn and gives up once d has elapsed. Only the wait is
// bounded: fn keeps running in its goroutine until it returns, so fn must
// terminate on its own (idna and RE2 matching are linear in the input).
func withTimeout[T any](d time.Duration, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
