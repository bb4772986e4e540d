// Package dispatch orchestrates a natural-language query: classify the
// intent, extract arguments from the original text, call the cluster gateway,
// and format the answer. Every failure is recovered here into a user-safe
// answer string; nothing propagates to the transport layer.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kubeask/kubeask/internal/intent"
	"github.com/kubeask/kubeask/internal/metrics"
)

// Answer strings. These are the observable contract; change with care.
const (
	answerUnknownIntent         = "I'm sorry, I couldn't determine the action for this query."
	answerInvalidPodName        = "Invalid pod name format in query."
	answerInvalidDeploymentName = "Invalid deployment name format in query."
	answerErrorPrefix           = "An error occurred while processing your query: "
)

// Classifier turns a user query into raw intent text.
type Classifier interface {
	Classify(ctx context.Context, query string) (string, error)
}

// ClusterGateway is the read-only cluster capability the dispatcher needs.
type ClusterGateway interface {
	ListPods(ctx context.Context, namespace string) ([]string, error)
	GetPodStatus(ctx context.Context, name, namespace string) (string, error)
	ListPodsByLabel(ctx context.Context, selector, namespace string) ([]string, error)
	CountNodes(ctx context.Context) (int, error)
	ProbeAPIServer(ctx context.Context) bool
}

// Dispatcher resolves queries to cluster operations.
type Dispatcher struct {
	classifier Classifier
	gateway    ClusterGateway
	namespace  string
	logger     *zap.Logger
}

// NewDispatcher creates a dispatcher. namespace is the namespace pod queries
// run against.
func NewDispatcher(classifier Classifier, gateway ClusterGateway, namespace string, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		classifier: classifier,
		gateway:    gateway,
		namespace:  namespace,
		logger:     logger,
	}
}

// Dispatch processes one query and always returns an answer string. Pipeline
// failures are rendered as a prefixed error message; panics are recovered.
func (d *Dispatcher) Dispatch(ctx context.Context, query string) (answer string) {
	start := time.Now()
	resolved := intent.Unknown

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic while processing query",
				zap.Any("panic", r),
				zap.String("query", query))
			metrics.QueriesTotal.WithLabelValues(resolved.String(), string(KindInternal)).Inc()
			answer = fmt.Sprintf("%s%v", answerErrorPrefix, r)
		}
		metrics.QueryDuration.WithLabelValues(resolved.String()).Observe(time.Since(start).Seconds())
	}()

	ans, res, qerr := d.process(ctx, query)
	resolved = res
	if qerr != nil {
		d.logger.Error("query failed",
			zap.String("kind", string(qerr.Kind)),
			zap.String("intent", res.String()),
			zap.String("query", query),
			zap.Error(qerr.Err))
		metrics.QueriesTotal.WithLabelValues(res.String(), string(qerr.Kind)).Inc()
		return answerErrorPrefix + qerr.Err.Error()
	}

	metrics.QueriesTotal.WithLabelValues(res.String(), "success").Inc()
	return ans
}

// process runs the classify → extract → gateway → format chain and reports
// failures as tagged errors for the boundary above to render.
func (d *Dispatcher) process(ctx context.Context, query string) (string, intent.Intent, *QueryError) {
	raw, err := d.classifier.Classify(ctx, query)
	if err != nil {
		return "", intent.Unknown, &QueryError{Kind: KindClassificationUnavailable, Err: err}
	}

	resolved := intent.Resolve(raw)
	d.logger.Debug("intent resolved",
		zap.String("intent", resolved.String()),
		zap.String("raw", raw))

	switch resolved {
	case intent.CountPods:
		pods, err := d.gateway.ListPods(ctx, d.namespace)
		if err != nil {
			return "", resolved, &QueryError{Kind: KindGateway, Err: err}
		}
		return fmt.Sprintf("There are %d pods in the default namespace.", len(pods)), resolved, nil

	case intent.ListPods:
		pods, err := d.gateway.ListPods(ctx, d.namespace)
		if err != nil {
			return "", resolved, &QueryError{Kind: KindGateway, Err: err}
		}
		return strings.Join(pods, ", "), resolved, nil

	case intent.CheckPodStatus:
		name, ok := intent.ExtractPodName(query)
		if !ok {
			// Missing argument is a parsing limitation, not a fault;
			// the gateway is not called.
			d.logger.Warn("no pod name in query", zap.String("query", query))
			return answerInvalidPodName, resolved, nil
		}
		d.logger.Info("looking up pod status",
			zap.String("pod", name),
			zap.String("namespace", d.namespace))
		status, err := d.gateway.GetPodStatus(ctx, name, d.namespace)
		if err != nil {
			return "", resolved, &QueryError{Kind: KindGateway, Err: err}
		}
		return fmt.Sprintf("The status of the pod '%s' is '%s'.", name, status), resolved, nil

	case intent.CountNodes:
		count, err := d.gateway.CountNodes(ctx)
		if err != nil {
			return "", resolved, &QueryError{Kind: KindGateway, Err: err}
		}
		return fmt.Sprintf("There are %d nodes in the cluster.", count), resolved, nil

	case intent.CheckAPIServer:
		if d.gateway.ProbeAPIServer(ctx) {
			return "Yes", resolved, nil
		}
		return "No", resolved, nil

	case intent.ListPodsForDeployment:
		name, ok := intent.ExtractDeploymentName(query)
		if !ok {
			d.logger.Warn("no deployment name in query", zap.String("query", query))
			return answerInvalidDeploymentName, resolved, nil
		}
		pods, err := d.gateway.ListPodsByLabel(ctx, "app="+name, d.namespace)
		if err != nil {
			return "", resolved, &QueryError{Kind: KindGateway, Err: err}
		}
		// When pods match, the result is the deployment name itself, not the
		// pod list. Historical behavior, kept for parity.
		result := name
		if len(pods) == 0 {
			result = fmt.Sprintf("No pods found for deployment '%s'.", name)
		}
		return fmt.Sprintf("The pod(s) spawned by deployment '%s' are: %s", name, result), resolved, nil

	default:
		return answerUnknownIntent, resolved, nil
	}
}
