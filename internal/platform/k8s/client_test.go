package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	storagev1 "k8s.io/api/storage/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/lakeup/lakeup/internal/provisioning"
)

func fakeClient(objects ...runtime.Object) *Client {
	return NewFromClientset(fake.NewSimpleClientset(objects...))
}

func readyNode(name string) *corev1.Node {
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
			},
		},
	}
}

func TestServiceAddress(t *testing.T) {
	c := fakeClient(&corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "minio", Namespace: "lakehouse"},
		Spec: corev1.ServiceSpec{
			Ports: []corev1.ServicePort{{Port: 9000}},
		},
	})

	addr, err := c.ServiceAddress(context.Background(), "lakehouse", "minio")
	require.NoError(t, err)
	assert.Equal(t, "minio.lakehouse.svc.cluster.local", addr.Host)
	assert.Equal(t, int32(9000), addr.Port)
}

func TestServiceAddress_NoPorts(t *testing.T) {
	c := fakeClient(&corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: "minio", Namespace: "lakehouse"},
	})

	_, err := c.ServiceAddress(context.Background(), "lakehouse", "minio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ports")
}

func TestNodesReady(t *testing.T) {
	t.Run("no nodes", func(t *testing.T) {
		ready, err := fakeClient().NodesReady(context.Background())
		require.NoError(t, err)
		assert.False(t, ready)
	})

	t.Run("all ready", func(t *testing.T) {
		ready, err := fakeClient(readyNode("node-0")).NodesReady(context.Background())
		require.NoError(t, err)
		assert.True(t, ready)
	})

	t.Run("one not ready", func(t *testing.T) {
		notReady := &corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "node-1"}}
		ready, err := fakeClient(readyNode("node-0"), notReady).NodesReady(context.Background())
		require.NoError(t, err)
		assert.False(t, ready)
	})
}

func TestDefaultStorageClassPresent(t *testing.T) {
	nonDefault := &storagev1.StorageClass{
		ObjectMeta: metav1.ObjectMeta{Name: "slow"},
	}
	asDefault := &storagev1.StorageClass{
		ObjectMeta: metav1.ObjectMeta{
			Name:        "local-path",
			Annotations: map[string]string{"storageclass.kubernetes.io/is-default-class": "true"},
		},
	}

	present, err := fakeClient(nonDefault).DefaultStorageClassPresent(context.Background())
	require.NoError(t, err)
	assert.False(t, present)

	present, err = fakeClient(nonDefault, asDefault).DefaultStorageClassPresent(context.Background())
	require.NoError(t, err)
	assert.True(t, present)
}

func TestDeploymentReady(t *testing.T) {
	deployment := func(replicas, available int32) *appsv1.Deployment {
		return &appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "trino-coordinator", Namespace: "lakehouse"},
			Spec:       appsv1.DeploymentSpec{Replicas: &replicas},
			Status: appsv1.DeploymentStatus{
				UpdatedReplicas:   available,
				AvailableReplicas: available,
				Conditions: []appsv1.DeploymentCondition{
					{Type: appsv1.DeploymentAvailable, Status: corev1.ConditionTrue},
				},
			},
		}
	}

	ready, err := fakeClient(deployment(1, 1)).DeploymentReady(context.Background(), "lakehouse", "trino-coordinator")
	require.NoError(t, err)
	assert.True(t, ready)

	ready, err = fakeClient(deployment(1, 0)).DeploymentReady(context.Background(), "lakehouse", "trino-coordinator")
	require.NoError(t, err)
	assert.False(t, ready)
}

func TestDeploymentReady_Missing(t *testing.T) {
	_, err := fakeClient().DeploymentReady(context.Background(), "lakehouse", "absent")
	assert.Error(t, err)
}

func TestStatefulSetReady(t *testing.T) {
	sts := func(replicas, ready int32) *appsv1.StatefulSet {
		return &appsv1.StatefulSet{
			ObjectMeta: metav1.ObjectMeta{Name: "redis-master", Namespace: "lakehouse"},
			Spec:       appsv1.StatefulSetSpec{Replicas: &replicas},
			Status:     appsv1.StatefulSetStatus{ReadyReplicas: ready},
		}
	}

	ok, err := fakeClient(sts(1, 1)).StatefulSetReady(context.Background(), "lakehouse", "redis-master")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fakeClient(sts(1, 0)).StatefulSetReady(context.Background(), "lakehouse", "redis-master")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNamespaceLifecycle(t *testing.T) {
	c := fakeClient()
	ctx := context.Background()

	presence, err := c.NamespacePresence(ctx, "lakehouse")
	require.NoError(t, err)
	assert.Equal(t, provisioning.PresenceAbsent, presence)

	presence, err = c.EnsureNamespace(ctx, "lakehouse")
	require.NoError(t, err)
	assert.Equal(t, provisioning.PresenceAbsent, presence)

	// Second ensure is a no-op.
	presence, err = c.EnsureNamespace(ctx, "lakehouse")
	require.NoError(t, err)
	assert.Equal(t, provisioning.PresenceExists, presence)
}

func TestNamespacePresence_ForeignOwner(t *testing.T) {
	c := fakeClient(&corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:   "lakehouse",
			Labels: map[string]string{ManagedByLabel: "helm"},
		},
	})

	_, err := c.NamespacePresence(context.Background(), "lakehouse")
	require.Error(t, err)

	var conflict *provisioning.ResourceConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "namespace", conflict.Resource)
}

func TestSecretValue(t *testing.T) {
	c := fakeClient(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "minio", Namespace: "lakehouse"},
		Data:       map[string][]byte{"rootUser": []byte("admin")},
	})
	ctx := context.Background()

	v, err := c.SecretValue(ctx, "lakehouse", "minio", "rootUser")
	require.NoError(t, err)
	assert.Equal(t, "admin", v)

	_, err = c.SecretValue(ctx, "lakehouse", "minio", "rootPassword")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in secret")
}

func TestSecretPresence(t *testing.T) {
	c := fakeClient(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "minio", Namespace: "lakehouse"},
	})
	ctx := context.Background()

	presence, err := c.SecretPresence(ctx, "lakehouse", "minio")
	require.NoError(t, err)
	assert.Equal(t, provisioning.PresenceExists, presence)

	presence, err = c.SecretPresence(ctx, "lakehouse", "absent")
	require.NoError(t, err)
	assert.Equal(t, provisioning.PresenceAbsent, presence)
}
