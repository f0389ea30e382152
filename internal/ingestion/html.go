package ingestion

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a posting URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	default:
		return PlatformUnknown
	}
}

// contentSelectors returns content selectors for a platform, most specific first.
func contentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{".job__description.body", ".job__description", ".job-description__content", "#content"}
	case PlatformLever:
		return []string{".posting-page", ".posting-description", ".content"}
	case PlatformWorkday:
		return []string{"[data-automation-id='jobDescription']", ".job-description"}
	default:
		return []string{"[itemprop='description']", ".job-description", "main", "article", "#content", ".content"}
	}
}

// noiseSelectors are removed before text extraction on every page.
var noiseSelectors = []string{
	"nav", "footer", "header", "script", "style", "noscript", "form",
	".cookie-banner", ".cookie-consent", ".social-share", ".share-buttons",
	".eeo-statement", ".voluntary-disclosure", ".apply-button-container",
}

// pageURL reads the canonical URL a saved page was captured from.
func pageURL(doc *goquery.Document) string {
	if href, ok := doc.Find("link[rel='canonical']").Attr("href"); ok {
		return href
	}
	if content, ok := doc.Find("meta[property='og:url']").Attr("content"); ok {
		return content
	}
	return ""
}

// extractHTMLText returns the main text of a saved job posting page.
func extractHTMLText(html string) (string, Platform, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", PlatformUnknown, fmt.Errorf("failed to parse HTML: %w", err)
	}

	platform := DetectPlatform(pageURL(doc))
	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()

	var main *goquery.Selection
	for _, selector := range contentSelectors(platform) {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	// Block elements are separated so words on adjacent lines do not merge.
	main.Find("p, li, br, div, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})
	return main.Text(), platform, nil
}
