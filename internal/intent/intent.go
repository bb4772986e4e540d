// Package intent classifies natural-language cluster queries into a fixed set
// of supported actions and extracts their arguments.
package intent

import "strings"

// Intent is the classified action a query maps to.
type Intent int

const (
	Unknown Intent = iota
	CountPods
	ListPods
	CheckPodStatus
	CountNodes
	CheckAPIServer
	ListPodsForDeployment
)

// String returns a stable label for logs and metrics.
func (i Intent) String() string {
	switch i {
	case CountPods:
		return "count_pods"
	case ListPods:
		return "list_pods"
	case CheckPodStatus:
		return "check_pod_status"
	case CountNodes:
		return "count_nodes"
	case CheckAPIServer:
		return "check_api_server"
	case ListPodsForDeployment:
		return "list_pods_for_deployment"
	default:
		return "unknown"
	}
}

// canonicalPhrases maps model output substrings to intents. Order is a
// versioned contract: phrases are not mutually exclusive in arbitrary model
// output, so the first containment match wins.
var canonicalPhrases = []struct {
	phrase string
	intent Intent
}{
	{"count pods", CountPods},
	{"list all pods", ListPods},
	{"check pod status", CheckPodStatus},
	{"count nodes", CountNodes},
	{"check API server", CheckAPIServer},
	{"list pods for deployment", ListPodsForDeployment},
}

// Resolve maps raw model output to an Intent by checking each canonical
// phrase for containment in priority order. No match resolves to Unknown.
// Pure; no I/O.
func Resolve(raw string) Intent {
	for _, c := range canonicalPhrases {
		if strings.Contains(raw, c.phrase) {
			return c.intent
		}
	}
	return Unknown
}
