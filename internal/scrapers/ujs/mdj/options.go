package mdj

import (
	"docketsearch/lib/textutil"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const countyMatchThreshold = 0.9

func selectOptions(body, name string) ([]string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	sel := doc.Find(fmt.Sprintf(`select[name="%s"]`, name))
	if sel.Length() == 0 {
		return nil, false, nil
	}
	var options []string
	sel.Find("option").Each(func(_ int, o *goquery.Selection) {
		value := strings.TrimSpace(o.AttrOr("value", o.Text()))
		if value != "" {
			options = append(options, value)
		}
	})
	return options, true, nil
}

// matchCounty picks the county dropdown option closest to the county name
// from the county table. The table's name is posted as is when the page has
// no county dropdown.
func matchCounty(landing, county string) (string, error) {
	options, found, err := selectOptions(landing, countyField)
	if err != nil {
		return "", err
	}
	if !found || len(options) == 0 {
		return county, nil
	}
	option, ok := textutil.ClosestMatch(county, options, countyMatchThreshold)
	if !ok {
		return "", fmt.Errorf("county %q is not offered by the portal", county)
	}
	return option, nil
}

// checkOffice fails when the court office dropdown exists but does not
// offer `code`.
func checkOffice(countyPage, code string) error {
	options, found, err := selectOptions(countyPage, officeField)
	if err != nil {
		return err
	}
	if !found || len(options) == 0 {
		return nil
	}
	for _, o := range options {
		if o == code {
			return nil
		}
	}
	return fmt.Errorf("court office %s is not offered for the selected county", code)
}
