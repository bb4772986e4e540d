package intent

import "regexp"

// Argument extraction runs against the original user query, not the model
// output. The patterns are loosely anchored on purpose; their matching
// semantics are part of the observable contract and must not be tightened.
var (
	podNamePattern        = regexp.MustCompile(`named\s+'?([\w\-\d]+)'?`)
	deploymentNamePattern = regexp.MustCompile(`by\s+([\w\-\d]+)`)
)

// ExtractPodName returns the pod name referenced after the word "named",
// optionally quoted. The second return is false when the query carries none.
func ExtractPodName(text string) (string, bool) {
	m := podNamePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractDeploymentName returns the deployment name referenced after the word
// "by". The second return is false when the query carries none.
func ExtractDeploymentName(text string) (string, bool) {
	m := deploymentNamePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
