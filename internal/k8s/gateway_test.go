package k8s

import (
	"context"
	"errors"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	fakediscovery "k8s.io/client-go/discovery/fake"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func pod(name, namespace string, labels map[string]string, phase corev1.PodPhase) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    labels,
		},
		Status: corev1.PodStatus{Phase: phase},
	}
}

func TestListPods(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		pod("alpha", "default", nil, corev1.PodRunning),
		pod("beta", "default", nil, corev1.PodPending),
		pod("other", "kube-system", nil, corev1.PodRunning),
	)
	client := NewClientForTest(clientset)

	names, err := client.ListPods(context.Background(), "default")
	if err != nil {
		t.Fatalf("ListPods() error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("ListPods() = %v, want 2 pods", names)
	}
}

func TestGetPodStatus(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		pod("web", "default", nil, corev1.PodRunning),
	)
	client := NewClientForTest(clientset)

	status, err := client.GetPodStatus(context.Background(), "web", "default")
	if err != nil {
		t.Fatalf("GetPodStatus() error: %v", err)
	}
	if status != "Running" {
		t.Errorf("GetPodStatus() = %q, want Running", status)
	}
}

func TestGetPodStatus_NotFound(t *testing.T) {
	client := NewClientForTest(fake.NewSimpleClientset())

	status, err := client.GetPodStatus(context.Background(), "ghost", "default")
	if err != nil {
		t.Fatalf("missing pod must not be an error, got: %v", err)
	}
	if status != PodNotFound {
		t.Errorf("GetPodStatus() = %q, want %q", status, PodNotFound)
	}
}

func TestGetPodStatus_APIFailure(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	clientset.PrependReactor("get", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("connection refused")
	})
	client := NewClientForTest(clientset)

	_, err := client.GetPodStatus(context.Background(), "web", "default")
	if err == nil {
		t.Fatal("GetPodStatus() expected error for API failure")
	}
}

func TestListPodsByLabel(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		pod("app-1", "default", map[string]string{"app": "my-deployment"}, corev1.PodRunning),
		pod("app-2", "default", map[string]string{"app": "my-deployment"}, corev1.PodRunning),
		pod("unrelated", "default", map[string]string{"app": "other"}, corev1.PodRunning),
	)
	client := NewClientForTest(clientset)

	names, err := client.ListPodsByLabel(context.Background(), "app=my-deployment", "default")
	if err != nil {
		t.Fatalf("ListPodsByLabel() error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("ListPodsByLabel() = %v, want 2 pods", names)
	}

	names, err = client.ListPodsByLabel(context.Background(), "app=absent", "default")
	if err != nil {
		t.Fatalf("ListPodsByLabel() error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ListPodsByLabel() = %v, want none", names)
	}
}

func TestCountNodes(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		&corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "node-1"}},
		&corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "node-2"}},
		&corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "node-3"}},
	)
	client := NewClientForTest(clientset)

	count, err := client.CountNodes(context.Background())
	if err != nil {
		t.Fatalf("CountNodes() error: %v", err)
	}
	if count != 3 {
		t.Errorf("CountNodes() = %d, want 3", count)
	}
}

func TestProbeAPIServer(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	disc := clientset.Discovery().(*fakediscovery.FakeDiscovery)
	disc.Resources = []*metav1.APIResourceList{
		{GroupVersion: "v1", APIResources: []metav1.APIResource{{Name: "pods"}}},
	}
	client := NewClientForTest(clientset)

	if !client.ProbeAPIServer(context.Background()) {
		t.Error("ProbeAPIServer() = false, want true when discovery answers")
	}
}

func TestProbeAPIServer_Unreachable(t *testing.T) {
	// No v1 resources registered: discovery reports not found.
	client := NewClientForTest(fake.NewSimpleClientset())

	if client.ProbeAPIServer(context.Background()) {
		t.Error("ProbeAPIServer() = true, want false when discovery fails")
	}
}
