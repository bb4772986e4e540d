// Package k8s wraps client-go with the read-only cluster operations the
// query dispatcher needs.
package k8s

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps Kubernetes client-go
type Client struct {
	Clientset kubernetes.Interface
	Config    *rest.Config
	Context   string
	// Timeout for outbound K8s API calls; 0 means no timeout (use request context only).
	Timeout time.Duration
	// limiter optionally rate-limits outbound API calls. Nil = no limit.
	limiter *rate.Limiter
	// breaker fails fast when the cluster API keeps erroring.
	breaker *CircuitBreaker
}

// NewClient creates a new Kubernetes client. In-cluster config is tried first;
// falls back to the given kubeconfig path or the default one.
func NewClient(kubeconfigPath, kubeContext string) (*Client, error) {
	var config *rest.Config
	var err error

	if kubeconfigPath == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			homeDir, _ := os.UserHomeDir()
			if homeDir != "" {
				kubeconfigPath = filepath.Join(homeDir, ".kube", "config")
			}
		}
	}

	if config == nil {
		config, err = buildConfigFromFlags(kubeContext, kubeconfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to build config: %w", err)
		}
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{
		Clientset: clientset,
		Config:    config,
		Context:   kubeContext,
		breaker:   NewCircuitBreaker(),
	}, nil
}

func buildConfigFromFlags(kubeContext, kubeconfigPath string) (*rest.Config, error) {
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath},
		&clientcmd.ConfigOverrides{
			CurrentContext: kubeContext,
		}).ClientConfig()
}

// SetTimeout sets the timeout for outbound K8s API calls.
func (c *Client) SetTimeout(d time.Duration) {
	c.Timeout = d
}

// SetLimiter sets a token-bucket rate limiter for outbound K8s API calls.
func (c *Client) SetLimiter(l *rate.Limiter) {
	c.limiter = l
}

func (c *Client) waitRateLimit(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// withTimeout returns ctx with timeout applied if c.Timeout > 0; otherwise returns ctx and a no-op cancel.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return ctx, func() {}
}

// NewClientForTest creates a Client that uses the given Clientset. Config is
// nil; callers must not use client methods that need it.
func NewClientForTest(clientset kubernetes.Interface) *Client {
	return &Client{
		Clientset: clientset,
		breaker:   NewCircuitBreaker(),
	}
}
