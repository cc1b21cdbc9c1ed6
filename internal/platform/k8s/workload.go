package k8s

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DeploymentReady reports whether a deployment has all replicas
// available. A missing deployment is simply not ready.
func (c *Client) DeploymentReady(ctx context.Context, namespace, name string) (bool, error) {
	deployment, err := c.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to get deployment %s/%s: %w", namespace, name, err)
	}
	return isDeploymentReady(deployment), nil
}

// StatefulSetReady reports whether a statefulset has all replicas ready.
func (c *Client) StatefulSetReady(ctx context.Context, namespace, name string) (bool, error) {
	sts, err := c.clientset.AppsV1().StatefulSets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to get statefulset %s/%s: %w", namespace, name, err)
	}

	replicas := int32(1)
	if sts.Spec.Replicas != nil {
		replicas = *sts.Spec.Replicas
	}
	return sts.Status.ReadyReplicas == replicas, nil
}

func isDeploymentReady(deployment *appsv1.Deployment) bool {
	replicas := int32(1)
	if deployment.Spec.Replicas != nil {
		replicas = *deployment.Spec.Replicas
	}
	if deployment.Status.UpdatedReplicas != replicas {
		return false
	}
	if deployment.Status.AvailableReplicas != replicas {
		return false
	}

	for _, condition := range deployment.Status.Conditions {
		if condition.Type == appsv1.DeploymentAvailable &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}
