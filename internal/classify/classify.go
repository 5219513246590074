// Package classify maps an invoked command string to the output family
// that decides which extraction strategy applies.
package classify

import "strings"

// Family is a classification bucket for command output.
type Family string

const (
	// FamilyPackageManager covers npm/yarn/pnpm style tools whose
	// errors arrive as structured vendor blocks.
	FamilyPackageManager Family = "package-manager"

	// FamilyPython covers interpreters that report multi-line
	// tracebacks terminated by an exception name.
	FamilyPython Family = "python"

	// FamilyNode covers runtimes that report an error header followed
	// by "at ..." stack frames.
	FamilyNode Family = "node"

	// FamilyGeneric is the fallback for anything unrecognized.
	FamilyGeneric Family = "generic"
)

// rule is one ordered classification entry. First match wins; ties are
// resolved by position in the list, not by match length.
type rule struct {
	token  string
	family Family
}

var rules = []rule{
	{"npm ", FamilyPackageManager},
	{"npx ", FamilyPackageManager},
	{"yarn", FamilyPackageManager},
	{"pnpm", FamilyPackageManager},
	{"pytest", FamilyPython},
	{"python", FamilyPython},
	{"pip ", FamilyPython},
	{"pip3", FamilyPython},
	{"node ", FamilyNode},
	{"jest", FamilyNode},
	{"mocha", FamilyNode},
	{"tsc", FamilyNode},
}

// Classify returns the output family for a command string.
func Classify(command string) Family {
	cmd := strings.ToLower(strings.TrimSpace(command))
	if cmd == "" {
		return FamilyGeneric
	}
	// Pad so trailing-space tokens also match a bare binary name
	// ("npm" alone classifies the same as "npm install").
	padded := cmd + " "
	for _, r := range rules {
		if strings.Contains(padded, r.token) {
			return r.family
		}
	}
	return FamilyGeneric
}
