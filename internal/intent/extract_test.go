package intent

import "testing"

func TestExtractPodName(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "quoted pod name",
			text:  "What is the status of the pod named 'example-pod'?",
			want:  "example-pod",
			found: true,
		},
		{
			name:  "unquoted pod name",
			text:  "status of the pod named nginx-7d9c",
			want:  "nginx-7d9c",
			found: true,
		},
		{
			name:  "first match wins",
			text:  "pod named alpha and pod named beta",
			want:  "alpha",
			found: true,
		},
		{
			name:  "hyphens and digits",
			text:  "the pod named 'web-frontend-123'",
			want:  "web-frontend-123",
			found: true,
		},
		{
			name:  "no pod name",
			text:  "What is the status of my pod?",
			found: false,
		},
		{
			name:  "empty text",
			text:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPodName(tt.text)
			if ok != tt.found {
				t.Fatalf("ExtractPodName(%q) found = %v, want %v", tt.text, ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractPodName(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractDeploymentName(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "canonical phrasing",
			text:  "Which pod is spawned by my-deployment?",
			want:  "my-deployment",
			found: true,
		},
		{
			name:  "deployment with digits",
			text:  "pods created by app-v2",
			want:  "app-v2",
			found: true,
		},
		{
			name:  "no deployment reference",
			text:  "Which pods are running?",
			found: false,
		},
		{
			// The pattern is loosely anchored; "by" inside an unrelated
			// clause still matches. This is intentional legacy behavior.
			name:  "unrelated by clause matches",
			text:  "pods sorted by name for my-deployment",
			want:  "name",
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDeploymentName(tt.text)
			if ok != tt.found {
				t.Fatalf("ExtractDeploymentName(%q) found = %v, want %v", tt.text, ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractDeploymentName(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
