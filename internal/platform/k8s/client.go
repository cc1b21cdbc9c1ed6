// Package k8s implements the cluster-runtime collaborator on top of
// client-go: namespaces, services, secrets, config maps and the
// readiness predicates the poller evaluates.
package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/lakeup/lakeup/internal/provisioning"
)

// ManagedByLabel marks resources created by lakeup so that re-runs can
// distinguish our resources from foreign ones.
const (
	ManagedByLabel = "app.kubernetes.io/managed-by"
	ManagedByValue = "lakeup"
)

// Client wraps Kubernetes API operations for stack provisioning.
type Client struct {
	clientset kubernetes.Interface
}

// NewClient creates a client from a kubeconfig path. An empty path uses
// the standard loading rules (KUBECONFIG, then ~/.kube/config).
func NewClient(kubeconfigPath string) (*Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		rules.ExplicitPath = kubeconfigPath
	}
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{clientset: clientset}, nil
}

// NewFromClientset wraps an existing clientset. Used with the fake
// clientset in tests.
func NewFromClientset(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// ServiceAddress resolves the cluster-internal address of a service.
func (c *Client) ServiceAddress(ctx context.Context, namespace, name string) (provisioning.ServiceAddress, error) {
	svc, err := c.clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return provisioning.ServiceAddress{}, fmt.Errorf("failed to get service %s/%s: %w", namespace, name, err)
	}
	if len(svc.Spec.Ports) == 0 {
		return provisioning.ServiceAddress{}, fmt.Errorf("service %s/%s has no ports", namespace, name)
	}

	return provisioning.ServiceAddress{
		Host: fmt.Sprintf("%s.%s.svc.cluster.local", name, namespace),
		Port: svc.Spec.Ports[0].Port,
	}, nil
}

// NodesReady reports whether the cluster has at least one node and all
// nodes carry a Ready condition.
func (c *Client) NodesReady(ctx context.Context) (bool, error) {
	nodes, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to list nodes: %w", err)
	}
	if len(nodes.Items) == 0 {
		return false, nil
	}
	for _, node := range nodes.Items {
		if !isNodeReady(&node) {
			return false, nil
		}
	}
	return true, nil
}

// DefaultStorageClassPresent reports whether a default storage class is
// configured, which the stateful releases need for their volume claims.
func (c *Client) DefaultStorageClassPresent(ctx context.Context) (bool, error) {
	classes, err := c.clientset.StorageV1().StorageClasses().List(ctx, metav1.ListOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to list storage classes: %w", err)
	}
	for _, sc := range classes.Items {
		if sc.Annotations["storageclass.kubernetes.io/is-default-class"] == "true" {
			return true, nil
		}
	}
	return false, nil
}

func isNodeReady(node *corev1.Node) bool {
	for _, condition := range node.Status.Conditions {
		if condition.Type == corev1.NodeReady && condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}
