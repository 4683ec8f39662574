package errors

import "fmt"

// Usage is the command synopsis shown with argument errors.
const Usage = "relnotes <previous-tag> <current-tag>"

// MissingTags creates the error for a call with fewer than two tags.
func MissingTags(got int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("expected <previous-tag> and <current-tag>, got %d argument(s)", got),
		Usage,
		"Pass the previous release tag first and the new release tag second",
		"Example: relnotes v1.4.0 v1.5.0",
	)
}

// InvalidConfig creates the warning shown when configuration cannot be used.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"ignoring configuration",
		"Fix the reported file or RELNOTES_* variable",
		"Built-in defaults are used until then",
	)
}
