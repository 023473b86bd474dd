package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

const (
	PlatformMobile  = "Mobile"
	PlatformDesktop = "Desktop"

	BrowserOther = "Other"
)

// browserRules is checked top to bottom and the first match wins. Order
// matters: most engines also advertise "Chrome/" and "Safari/", so the
// specific tokens come first.
var browserRules = []struct {
	browser string
	tokens  []string
}{
	{"Bot", []string{"bot", "crawler", "spider", "curl/", "wget/", "python-requests"}},
	{"Edge", []string{"edg/", "edge/", "edga/", "edgios/"}},
	{"Opera", []string{"opr/", "opera"}},
	{"Samsung Internet", []string{"samsungbrowser/"}},
	{"Yandex", []string{"yabrowser/"}},
	{"Firefox", []string{"firefox/", "fxios/"}},
	{"Chrome", []string{"crios/", "chrome/", "chromium/"}},
	{"Safari", []string{"safari/"}},
	{"Internet Explorer", []string{"msie ", "trident/"}},
}

var mobileTokens = []string{"mobi", "android", "iphone", "ipad", "ipod", "windows phone", "blackberry", "opera mini"}

// ClassifyUserAgent derives the browser and platform of a raw User-Agent.
// The result depends on the input only.
func ClassifyUserAgent(ua string) (browser, platform string) {
	lower := strings.ToLower(ua)

	browser = BrowserOther
	for _, rule := range browserRules {
		if containsAny(lower, rule.tokens) {
			browser = rule.browser
			break
		}
	}

	platform = PlatformDesktop
	if containsAny(lower, mobileTokens) {
		platform = PlatformMobile
	}

	return browser, platform
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// Visit is the client side of a redirect.
type Visit struct {
	IP        string
	UserAgent string
	At        time.Time
}

// NewClickEvent builds the immutable click record of a visit.
func NewClickEvent(linkID string, v Visit) storage.ClickEvent {
	browser, platform := ClassifyUserAgent(v.UserAgent)
	return storage.ClickEvent{
		ID:        uuid.NewString(),
		LinkID:    linkID,
		IPAddress: v.IP,
		UserAgent: v.UserAgent,
		Browser:   browser,
		Platform:  platform,
		ClickedAt: v.At.UTC(),
	}
}
