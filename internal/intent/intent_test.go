package intent

import "testing"

func TestResolve_CanonicalPhrases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Intent
	}{
		{
			name: "count pods bare",
			raw:  "count pods",
			want: CountPods,
		},
		{
			name: "count pods with surrounding text",
			raw:  "The action needed here is: count pods in the namespace.",
			want: CountPods,
		},
		{
			name: "list all pods",
			raw:  "You should list all pods.",
			want: ListPods,
		},
		{
			name: "check pod status",
			raw:  "Action: check pod status for the given pod",
			want: CheckPodStatus,
		},
		{
			name: "count nodes",
			raw:  "I would count nodes to answer this.",
			want: CountNodes,
		},
		{
			name: "check API server",
			raw:  "The right action is to check API server availability.",
			want: CheckAPIServer,
		},
		{
			name: "list pods for deployment",
			raw:  "list pods for deployment my-deployment",
			want: ListPodsForDeployment,
		},
		{
			name: "no phrase",
			raw:  "restart the cluster",
			want: Unknown,
		},
		{
			name: "empty",
			raw:  "",
			want: Unknown,
		},
		{
			name: "phrase casing matters",
			raw:  "Count Pods",
			want: Unknown,
		},
		{
			name: "api server phrase needs capital API",
			raw:  "check api server",
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.raw); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolve_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Intent
	}{
		{
			name: "count nodes beats check API server",
			raw:  "count nodes, or maybe check API server",
			want: CountNodes,
		},
		{
			name: "order independent of text position",
			raw:  "check API server then count nodes",
			want: CountNodes,
		},
		{
			name: "count pods beats list all pods",
			raw:  "list all pods and count pods",
			want: CountPods,
		},
		{
			name: "list all pods beats check pod status",
			raw:  "check pod status after you list all pods",
			want: ListPods,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.raw); got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIntent_String(t *testing.T) {
	if CountPods.String() != "count_pods" {
		t.Errorf("unexpected label %q", CountPods.String())
	}
	if Unknown.String() != "unknown" {
		t.Errorf("unexpected label %q", Unknown.String())
	}
	if Intent(99).String() != "unknown" {
		t.Errorf("out-of-range intent should label as unknown, got %q", Intent(99).String())
	}
}
