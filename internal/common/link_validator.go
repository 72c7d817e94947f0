package common

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Schemes that execute in the browser when an attachment link is clicked
var blockedLinkSchemes = []string{
	"javascript",
	"vbscript",
	"data",
}

// ValidateAttachmentLink rejects attachment links with a script-bearing scheme
// and links that do not parse as a URL reference.
// Empty links (a cleared slot) and scheme-less links are accepted.
func ValidateAttachmentLink(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return Validation(fmt.Sprintf("malformed attachment link: %q", link))
	}
	// url.Parse lower-cases the scheme
	if slices.Contains(blockedLinkSchemes, u.Scheme) {
		return Validation(fmt.Sprintf("attachment link scheme not allowed: %q", link))
	}
	return nil
}
