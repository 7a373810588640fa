// Package githubauth locates GitHub tokens exported under the names common in CI environments.
package githubauth

import "strings"

// Environment variable names that may carry a GitHub token.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

// EnvironmentLookup reads one environment variable, in the manner of os.LookupEnv.
type EnvironmentLookup func(key string) (string, bool)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

var cliNativeTokenVariables = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
}

// ResolveToken returns the first non-empty token in preference order along with the variable that held it.
func ResolveToken(lookup EnvironmentLookup) (string, string, bool) {
	for _, key := range tokenPreference {
		if value, found := lookupTrimmed(lookup, key); found {
			return value, key, true
		}
	}
	return "", "", false
}

// CLIEnvironment returns the variables to add to a gh invocation. gh reads GH_TOKEN and
// GITHUB_TOKEN itself, so only a token found under another name is forwarded as GH_TOKEN.
func CLIEnvironment(lookup EnvironmentLookup) map[string]string {
	for _, key := range cliNativeTokenVariables {
		if _, found := lookupTrimmed(lookup, key); found {
			return nil
		}
	}

	token, _, found := ResolveToken(lookup)
	if !found {
		return nil
	}
	return map[string]string{EnvGitHubCLIToken: token}
}

func lookupTrimmed(lookup EnvironmentLookup, key string) (string, bool) {
	if lookup == nil {
		return "", false
	}
	value, exists := lookup(key)
	if !exists {
		return "", false
	}
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return "", false
	}
	return value, true
}
