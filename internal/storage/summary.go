package storage

import (
	"sort"
	"strings"
)

// SortBrowsers orders a browser breakdown by total descending, ties broken by
// browser name ascending.
func SortBrowsers(bs []BrowserCount) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].Total != bs[j].Total {
			return bs[i].Total > bs[j].Total
		}
		return bs[i].Browser < bs[j].Browser
	})
}

// containsFold is a case-insensitive substring match.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
