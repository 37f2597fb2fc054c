// Package share builds the "publish" links for generated social posts.
package share

import (
	"fmt"
	"strings"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// DefaultSiteURL is the page Facebook shares alongside the quoted text.
const DefaultSiteURL = "https://ugt.es/"

// Target is one publish button.
type Target struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Links describes how a post can be published on a platform. Copy-only
// platforms have no share URL; the text has to be pasted in their app.
type Links struct {
	Platform models.Platform `json:"platform"`
	Text     string          `json:"text"`
	CopyOnly bool            `json:"copyOnly"`
	CopyHint string          `json:"copyHint,omitempty"`
	Targets  []Target        `json:"targets"`
}

// Build returns the publish links for text on platform. siteURL falls back
// to DefaultSiteURL.
func Build(platform models.Platform, text, siteURL string) (Links, error) {
	if !platform.Valid() {
		return Links{}, fmt.Errorf("unknown platform %q", platform)
	}
	if strings.TrimSpace(siteURL) == "" {
		siteURL = DefaultSiteURL
	}

	links := Links{Platform: platform, Text: text, Targets: []Target{}}
	encoded := EncodeURIComponent(text)

	switch platform {
	case models.PlatformTwitter:
		links.Targets = append(links.Targets, Target{
			Label: "Publicar en Twitter",
			URL:   "https://twitter.com/intent/tweet?text=" + encoded,
		})
	case models.PlatformFacebook:
		links.Targets = append(links.Targets, Target{
			Label: "Publicar en Facebook",
			URL:   "https://www.facebook.com/sharer/sharer.php?u=" + EncodeURIComponent(siteURL) + "&quote=" + encoded,
		})
	case models.PlatformMessaging:
		links.Targets = append(links.Targets,
			Target{Label: "Publicar en WhatsApp", URL: "https://api.whatsapp.com/send?text=" + encoded},
			Target{Label: "Publicar en Telegram", URL: "https://t.me/share/url?url=_&text=" + encoded},
		)
	default:
		links.CopyOnly = true
		links.CopyHint = fmt.Sprintf("Copia el texto y pégalo en la app de %s.", platform)
	}
	return links, nil
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s the way browsers do for URI
// components: only letters, digits and -_.!~*'() are left as is.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
