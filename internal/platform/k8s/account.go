package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/lakeup/lakeup/internal/provisioning"
)

// EnsureServiceAccount creates a service account if absent. Returns
// PresenceExists when it already existed, PresenceAbsent when created.
func (c *Client) EnsureServiceAccount(ctx context.Context, namespace, name string) (provisioning.Presence, error) {
	_, err := c.clientset.CoreV1().ServiceAccounts(namespace).Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return provisioning.PresenceExists, nil
	}
	if !apierrors.IsNotFound(err) {
		return provisioning.PresenceUnknown, fmt.Errorf("failed to get service account %s/%s: %w", namespace, name, err)
	}

	sa := &corev1.ServiceAccount{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    map[string]string{ManagedByLabel: ManagedByValue},
		},
	}
	if _, err := c.clientset.CoreV1().ServiceAccounts(namespace).Create(ctx, sa, metav1.CreateOptions{}); err != nil {
		if apierrors.IsAlreadyExists(err) {
			return provisioning.PresenceExists, nil
		}
		return provisioning.PresenceUnknown, fmt.Errorf("failed to create service account %s/%s: %w", namespace, name, err)
	}
	return provisioning.PresenceAbsent, nil
}

// ServiceAccountPresence reports whether a service account exists,
// without creating it.
func (c *Client) ServiceAccountPresence(ctx context.Context, namespace, name string) (provisioning.Presence, error) {
	_, err := c.clientset.CoreV1().ServiceAccounts(namespace).Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return provisioning.PresenceExists, nil
	}
	if apierrors.IsNotFound(err) {
		return provisioning.PresenceAbsent, nil
	}
	return provisioning.PresenceUnknown, fmt.Errorf("failed to get service account %s/%s: %w", namespace, name, err)
}

// EnsureConfigMap creates or replaces a config map we own. A config map
// carrying a foreign managed-by label is a conflict, not overwritten.
func (c *Client) EnsureConfigMap(ctx context.Context, namespace, name string, data map[string]string) error {
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    map[string]string{ManagedByLabel: ManagedByValue},
		},
		Data: data,
	}

	existing, err := c.clientset.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		if owner, ok := existing.Labels[ManagedByLabel]; !ok || owner != ManagedByValue {
			return &provisioning.ResourceConflictError{
				Resource: "configmap",
				Name:     fmt.Sprintf("%s/%s", namespace, name),
				Reason:   fmt.Sprintf("managed by %q", existing.Labels[ManagedByLabel]),
			}
		}
		cm.ResourceVersion = existing.ResourceVersion
		if _, err := c.clientset.CoreV1().ConfigMaps(namespace).Update(ctx, cm, metav1.UpdateOptions{}); err != nil {
			return fmt.Errorf("failed to update configmap %s/%s: %w", namespace, name, err)
		}
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to get configmap %s/%s: %w", namespace, name, err)
	}

	if _, err := c.clientset.CoreV1().ConfigMaps(namespace).Create(ctx, cm, metav1.CreateOptions{}); err != nil {
		return fmt.Errorf("failed to create configmap %s/%s: %w", namespace, name, err)
	}
	return nil
}

// ConfigMapData reads the data of a config map. A missing config map
// yields a nil map, not an error.
func (c *Client) ConfigMapData(ctx context.Context, namespace, name string) (map[string]string, error) {
	cm, err := c.clientset.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get configmap %s/%s: %w", namespace, name, err)
	}
	return cm.Data, nil
}
