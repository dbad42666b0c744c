package secret

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
)

// refPattern matches either the $$ escape or a ${VAR} reference.
var refPattern = regexp.MustCompile(`\$\$|\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnvStrict replaces every ${VAR} reference in s with the value of
// VAR from the environment. `$$` emits a literal `$`. Unlike os.ExpandEnv,
// a referenced variable that is not set is an error naming every missing
// variable, and bare `$VAR` references are left untouched.
func ExpandEnvStrict(s string) (string, error) {
	var missing []string

	out := refPattern.ReplaceAllStringFunc(s, func(ref string) string {
		if ref == "$$" {
			return "$"
		}
		name := ref[2 : len(ref)-1]
		value, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
			return ""
		}
		return value
	})

	if len(missing) > 0 {
		slices.Sort(missing)
		missing = slices.Compact(missing)
		return "", fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return out, nil
}
