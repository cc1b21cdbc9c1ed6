package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/lakeup/lakeup/internal/provisioning"
)

// NamespacePresence reports whether the namespace exists under our
// management. A foreign managed-by label is a ResourceConflictError.
func (c *Client) NamespacePresence(ctx context.Context, name string) (provisioning.Presence, error) {
	existing, err := c.clientset.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		if owner, ok := existing.Labels[ManagedByLabel]; ok && owner != ManagedByValue {
			return provisioning.PresenceUnknown, &provisioning.ResourceConflictError{
				Resource: "namespace",
				Name:     name,
				Reason:   fmt.Sprintf("managed by %q", owner),
			}
		}
		return provisioning.PresenceExists, nil
	}
	if apierrors.IsNotFound(err) {
		return provisioning.PresenceAbsent, nil
	}
	return provisioning.PresenceUnknown, fmt.Errorf("failed to get namespace %s: %w", name, err)
}

// EnsureNamespace creates the namespace if it is absent. It returns
// PresenceExists when the namespace already existed under our
// management and PresenceAbsent when it was created by this call.
// A namespace managed by something else is a ResourceConflictError.
func (c *Client) EnsureNamespace(ctx context.Context, name string) (provisioning.Presence, error) {
	presence, err := c.NamespacePresence(ctx, name)
	if err != nil {
		return presence, err
	}
	if presence == provisioning.PresenceExists {
		return provisioning.PresenceExists, nil
	}

	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: map[string]string{ManagedByLabel: ManagedByValue},
		},
	}
	if _, err := c.clientset.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{}); err != nil {
		// Lost a race with another creator; treat as existing.
		if apierrors.IsAlreadyExists(err) {
			return provisioning.PresenceExists, nil
		}
		return provisioning.PresenceUnknown, fmt.Errorf("failed to create namespace %s: %w", name, err)
	}
	return provisioning.PresenceAbsent, nil
}
