// Package urlutil validates and normalizes candidate URLs before they are
// handed to the extraction pipeline. Everything here is pure string work:
// no I/O, no panics, malformed input yields false / the original string.
package urlutil

import (
	"net/url"
	"strings"
)

// blockedExtensions are file types we never try to extract readable text from.
var blockedExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".zip", ".rar", ".tar", ".gz",
}

// blockedSchemes are pseudo-schemes that cannot be fetched as pages.
var blockedSchemes = []string{"javascript:", "mailto:", "tel:", "ftp:", "file:"}

// blockedDomains are platforms that block scraping or require login.
var blockedDomains = []string{
	"facebook.com", "twitter.com", "instagram.com", "linkedin.com",
	"pinterest.com", "youtube.com", "tiktok.com", "reddit.com",
	"quora.com", "snapchat.com",
}

// trackingParams are query parameters stripped by Clean. Prefix entries
// (ending in "_") match any parameter starting with that prefix.
var trackingParams = map[string]bool{
	"fbclid": true, "gclid": true, "msclkid": true,
	"mc_cid": true, "mc_eid": true,
	"_ga": true, "_gid": true, "_gac": true, "_gl": true, "_gat": true,
	"ref": true, "referrer": true, "source": true, "campaign": true,
}

// IsValid reports whether a URL is worth fetching: http(s) with a host,
// not a blocked file type, pseudo-scheme, or scrape-hostile domain.
func IsValid(raw string) bool {
	if raw == "" {
		return false
	}

	lower := strings.ToLower(raw)
	for _, scheme := range blockedSchemes {
		if strings.Contains(lower, scheme) {
			return false
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}

	for _, ext := range blockedExtensions {
		if strings.HasSuffix(strings.ToLower(u.Path), ext) {
			return false
		}
	}

	host := strings.ToLower(u.Host)
	for _, domain := range blockedDomains {
		if strings.Contains(host, domain) {
			return false
		}
	}

	return true
}

// Clean strips the fragment and known tracking parameters while keeping the
// path and remaining query intact. Malformed input is returned unchanged.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Fragment = ""

	if u.RawQuery != "" {
		kept := url.Values{}
		for key, vals := range u.Query() {
			if isTrackingParam(key) {
				continue
			}
			for _, v := range vals {
				kept.Add(key, v)
			}
		}
		u.RawQuery = kept.Encode()
	}

	return u.String()
}

// Domain returns the lowercased host of a URL, or "" if it cannot be parsed.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(u.Host, "www."))
}

func isTrackingParam(key string) bool {
	k := strings.ToLower(key)
	if trackingParams[k] {
		return true
	}
	return strings.HasPrefix(k, "utm_")
}
