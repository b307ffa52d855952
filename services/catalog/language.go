package catalog

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const defaultLanguage = "en-US"

var printer = message.NewPrinter(language.English)

// normalizeLanguage converts user supplied language settings ("en", "pt_br",
// "fr-FR") to the xx-YY form the catalog expects. A region is only kept
// when it was given explicitly; otherwise US is assumed.
func normalizeLanguage(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", "-"))
	if value == "" {
		return defaultLanguage
	}
	tag, err := language.Parse(value)
	if err != nil {
		return defaultLanguage
	}
	base, conf := tag.Base()
	if conf == language.No {
		return defaultLanguage
	}
	region, conf := tag.Region()
	if conf != language.Exact {
		return base.String() + "-US"
	}
	return base.String() + "-" + region.String()
}
