package k8s

import (
	"context"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubeask/kubeask/internal/metrics"
)

// PodNotFound is the status value reported when a pod does not exist. It is
// interpolated into the pod-status answer as if it were a phase; callers
// depend on this exact text.
const PodNotFound = "Pod not found."

// ListPods returns the names of all pods in the namespace.
func (c *Client) ListPods(ctx context.Context, namespace string) ([]string, error) {
	if err := c.waitRateLimit(ctx); err != nil {
		return nil, err
	}

	var names []string
	err := c.breaker.Execute(ctx, func() error {
		ctx, cancel := c.withTimeout(ctx)
		defer cancel()
		pods, err := c.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			return err
		}
		names = make([]string, 0, len(pods.Items))
		for _, pod := range pods.Items {
			names = append(names, pod.Name)
		}
		return nil
	})

	observe("list_pods", err)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// GetPodStatus returns the phase of the named pod. A missing pod is not an
// error: the PodNotFound sentinel is returned with a nil error. Any other
// failure is returned as-is.
func (c *Client) GetPodStatus(ctx context.Context, name, namespace string) (string, error) {
	if err := c.waitRateLimit(ctx); err != nil {
		return "", err
	}

	var phase string
	err := c.breaker.Execute(ctx, func() error {
		ctx, cancel := c.withTimeout(ctx)
		defer cancel()
		pod, err := c.Clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return err
		}
		phase = string(pod.Status.Phase)
		return nil
	})

	if apierrors.IsNotFound(err) {
		observe("get_pod_status", nil)
		return PodNotFound, nil
	}

	observe("get_pod_status", err)
	if err != nil {
		return "", err
	}
	return phase, nil
}

// ListPodsByLabel returns the names of pods matching the label selector.
func (c *Client) ListPodsByLabel(ctx context.Context, selector, namespace string) ([]string, error) {
	if err := c.waitRateLimit(ctx); err != nil {
		return nil, err
	}

	var names []string
	err := c.breaker.Execute(ctx, func() error {
		ctx, cancel := c.withTimeout(ctx)
		defer cancel()
		pods, err := c.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
		if err != nil {
			return err
		}
		names = make([]string, 0, len(pods.Items))
		for _, pod := range pods.Items {
			names = append(names, pod.Name)
		}
		return nil
	})

	observe("list_pods_by_label", err)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// CountNodes returns the number of nodes in the cluster.
func (c *Client) CountNodes(ctx context.Context) (int, error) {
	if err := c.waitRateLimit(ctx); err != nil {
		return 0, err
	}

	var count int
	err := c.breaker.Execute(ctx, func() error {
		ctx, cancel := c.withTimeout(ctx)
		defer cancel()
		nodes, err := c.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
		if err != nil {
			return err
		}
		count = len(nodes.Items)
		return nil
	})

	observe("count_nodes", err)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ProbeAPIServer reports whether the API server answers a discovery request.
// Failures are collapsed to false; this is a liveness probe, not a query.
func (c *Client) ProbeAPIServer(ctx context.Context) bool {
	if err := c.waitRateLimit(ctx); err != nil {
		observe("probe_api_server", err)
		return false
	}

	// Discovery calls do not take a context in this client-go version.
	err := c.breaker.Execute(ctx, func() error {
		_, err := c.Clientset.Discovery().ServerResourcesForGroupVersion("v1")
		return err
	})

	observe("probe_api_server", err)
	return err == nil
}

func observe(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.ClusterRequestsTotal.WithLabelValues(operation, status).Inc()
}
