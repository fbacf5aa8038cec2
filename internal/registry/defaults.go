package registry

import "github.com/anthropics/cc-toolgate/internal/decision"

// DefaultWrappers seeds the built-in wrapper table:
// sudo imposes an Ask floor since privilege escalation itself warrants
// confirmation even when the inner command would otherwise be allowed;
// xargs and env impose no floor of their own (Allow) and rely entirely
// on the inner command's decision.
func DefaultWrappers() map[string]WrapperSpec {
	return map[string]WrapperSpec{
		"sudo": {
			Floor:        decision.Ask,
			FlagsWithArg: map[string]bool{"-u": true, "-g": true, "-p": true},
		},
		"xargs": {
			Floor:        decision.Allow,
			FlagsWithArg: map[string]bool{"-I": true, "-n": true, "-P": true, "-s": true, "-E": true, "-d": true},
		},
		"env": {
			Floor:                  decision.Allow,
			FlagsWithArg:           map[string]bool{"-u": true, "-C": true, "-S": true},
			SkipLeadingAssignments: true,
		},
	}
}
