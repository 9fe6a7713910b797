package claim

import (
	"regexp"
	"strings"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
