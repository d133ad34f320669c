package results

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// PageTarget is the postback a pager link of a result table performs.
type PageTarget struct {
	EventTarget string
	Argument    string
	Number      int
}

var postbackRegex = regexp.MustCompile(`__doPostBack\('([^']+)','(Page\$(\d+))'\)`)

// FindPageTargets lists the numbered pager links in `doc`, ordered by page number.
func FindPageTargets(doc *goquery.Document) []PageTarget {
	seen := map[string]bool{}
	var targets []PageTarget
	doc.Find(`a[href*="__doPostBack"]`).Each(func(_ int, a *goquery.Selection) {
		match := postbackRegex.FindStringSubmatch(a.AttrOr("href", ""))
		if match == nil || seen[match[2]] {
			return
		}
		number, err := strconv.Atoi(match[3])
		if err != nil {
			return
		}
		seen[match[2]] = true
		targets = append(targets, PageTarget{
			EventTarget: match[1],
			Argument:    match[2],
			Number:      number,
		})
	})
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Number < targets[j].Number
	})
	return targets
}
