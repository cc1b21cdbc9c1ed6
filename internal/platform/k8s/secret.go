package k8s

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/lakeup/lakeup/internal/provisioning"
)

// SecretValue reads one key out of a secret. Secret data arrives
// base64-decoded from the API already.
func (c *Client) SecretValue(ctx context.Context, namespace, name, key string) (string, error) {
	secret, err := c.clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s/%s: %w", namespace, name, err)
	}

	data, ok := secret.Data[key]
	if !ok {
		return "", fmt.Errorf("key %s not found in secret %s/%s", key, namespace, name)
	}
	return string(data), nil
}

// SecretPresence reports whether a secret exists. API errors other than
// not-found yield PresenceUnknown, never a false "absent".
func (c *Client) SecretPresence(ctx context.Context, namespace, name string) (provisioning.Presence, error) {
	_, err := c.clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return provisioning.PresenceExists, nil
	}
	if apierrors.IsNotFound(err) {
		return provisioning.PresenceAbsent, nil
	}
	return provisioning.PresenceUnknown, fmt.Errorf("failed to check secret %s/%s: %w", namespace, name, err)
}
