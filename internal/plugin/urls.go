package plugin

import (
	"regexp"
	"strings"
)

// DefaultHost is the host a bare owner/repo shorthand resolves against.
const DefaultHost = "github.com"

// SourceKind classifies the shape of a plugin source string.
type SourceKind string

const (
	// SourceKindURL is a scheme-qualified URL (https://host/owner/repo).
	SourceKindURL SourceKind = "url"

	// SourceKindSSH is the short SSH form (git@host:owner/repo).
	SourceKindSSH SourceKind = "ssh"

	// SourceKindHostPath is a host-relative URL without a scheme
	// (codeberg.org/owner/repo).
	SourceKindHostPath SourceKind = "hostpath"

	// SourceKindShorthand is the bare owner/repo form, and the fallthrough
	// for anything the other patterns reject.
	SourceKindShorthand SourceKind = "shorthand"
)

// Source classification is heuristic, not a full URL grammar. The patterns
// are tried in order: scheme, SSH, host-relative; anything else falls
// through to shorthand. Ordering matters because a scheme URL also loosely
// matches the host-relative shape.
var (
	schemePattern   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	sshPattern      = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+:\S+$`)
	hostPathPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*(\.[a-zA-Z0-9-]+)+/\S+$`)
)

// ClassifySource assigns exactly one SourceKind to a source string.
func ClassifySource(source string) SourceKind {
	switch {
	case schemePattern.MatchString(source):
		return SourceKindURL
	case sshPattern.MatchString(source):
		return SourceKindSSH
	case hostPathPattern.MatchString(source):
		return SourceKindHostPath
	default:
		return SourceKindShorthand
	}
}

// NormalizeURL resolves a source string to a canonical clone URL:
// scheme-qualified and SSH forms pass through unchanged, host-relative
// forms are prefixed with https://, and owner/repo shorthand is rewritten
// against DefaultHost. Normalization is idempotent.
func NormalizeURL(source string) string {
	switch ClassifySource(source) {
	case SourceKindURL, SourceKindSSH:
		return source
	case SourceKindHostPath:
		return "https://" + source
	default:
		return "https://" + DefaultHost + "/" + source
	}
}

// ShortenURL produces the display form of a source string: the scheme is
// stripped from qualified URLs, and the host segment is additionally
// stripped when it is the default host. SSH, host-relative, and shorthand
// forms display unchanged.
func ShortenURL(source string) string {
	if ClassifySource(source) != SourceKindURL {
		return source
	}
	short := schemePattern.ReplaceAllString(source, "")
	short = strings.TrimPrefix(short, DefaultHost+"/")
	return short
}

// DeriveName extracts a plugin name from a canonical URL: the last path
// segment with any trailing extension (such as .git) removed. Returns an
// error when no usable segment can be extracted; such specs are dropped
// from the active set by the registry.
func DeriveName(canonicalURL string) (string, error) {
	trimmed := strings.TrimRight(canonicalURL, "/")

	// SSH shorthand separates host and path with a colon; treat both
	// separators as segment boundaries.
	idx := strings.LastIndexAny(trimmed, "/:")
	segment := trimmed
	if idx >= 0 {
		segment = trimmed[idx+1:]
	}

	if dot := strings.LastIndex(segment, "."); dot > 0 {
		segment = segment[:dot]
	}

	if segment == "" || segment == "." || segment == ".." || strings.ContainsAny(segment, "/\\:") {
		return "", NewError(ErrCodeInvalidSource, "no plugin name derivable from URL").
			WithContext("url", canonicalURL)
	}

	return segment, nil
}
