// Package helm implements the release-installer collaborator using the
// Helm SDK. InstallOrUpgrade has upsert semantics: an existing release
// is upgraded in place, never an error.
package helm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/repo"
	"helm.sh/helm/v3/pkg/storage/driver"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/lakeup/lakeup/internal/provisioning"
)

const defaultInstallTimeout = 10 * time.Minute

// Client performs chart installs against one target cluster.
type Client struct {
	restConfig *rest.Config
	settings   *cli.EnvSettings
}

// NewClient creates a helm client from a kubeconfig path. An empty path
// uses the standard loading rules.
func NewClient(kubeconfigPath string) (*Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		rules.ExplicitPath = kubeconfigPath
	}
	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	return &Client{
		restConfig: restConfig,
		settings:   cli.New(),
	}, nil
}

// InstallOrUpgrade installs a chart release or upgrades it if already
// present. "Already installed" is never an error.
func (c *Client) InstallOrUpgrade(ctx context.Context, spec provisioning.ReleaseSpec) error {
	actionConfig, err := c.actionConfig(spec.Namespace)
	if err != nil {
		return err
	}

	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = defaultInstallTimeout
	}

	loaded, err := c.loadChart(spec.RepoURL, spec.Chart, spec.Version)
	if err != nil {
		return fmt.Errorf("failed to load chart %s: %w", spec.Chart, err)
	}

	histClient := action.NewHistory(actionConfig)
	histClient.Max = 1
	_, histErr := histClient.Run(spec.Name)
	if histErr == nil {
		upgrade := action.NewUpgrade(actionConfig)
		upgrade.Namespace = spec.Namespace
		upgrade.Version = spec.Version
		upgrade.Wait = true
		upgrade.Timeout = timeout
		upgrade.ReuseValues = false

		if _, err := upgrade.RunWithContext(ctx, spec.Name, loaded, spec.Values); err != nil {
			return fmt.Errorf("helm upgrade of %s failed: %w", spec.Name, err)
		}
		return nil
	}
	if !errors.Is(histErr, driver.ErrReleaseNotFound) {
		return fmt.Errorf("failed to read history of release %s: %w", spec.Name, histErr)
	}

	install := action.NewInstall(actionConfig)
	install.ReleaseName = spec.Name
	install.Namespace = spec.Namespace
	install.CreateNamespace = false
	install.Version = spec.Version
	install.Wait = true
	install.Timeout = timeout

	if _, err := install.RunWithContext(ctx, loaded, spec.Values); err != nil {
		return fmt.Errorf("helm install of %s failed: %w", spec.Name, err)
	}
	return nil
}

// ReleasePresence reports whether a release exists in the namespace.
func (c *Client) ReleasePresence(ctx context.Context, namespace, name string) (provisioning.Presence, error) {
	actionConfig, err := c.actionConfig(namespace)
	if err != nil {
		return provisioning.PresenceUnknown, err
	}
	return releasePresence(actionConfig, name)
}

// releasePresence distinguishes "no such release" from a failing
// release-storage backend, which must never be misread as absent.
func releasePresence(actionConfig *action.Configuration, name string) (provisioning.Presence, error) {
	histClient := action.NewHistory(actionConfig)
	histClient.Max = 1
	if _, err := histClient.Run(name); err != nil {
		if errors.Is(err, driver.ErrReleaseNotFound) {
			return provisioning.PresenceAbsent, nil
		}
		return provisioning.PresenceUnknown, fmt.Errorf("failed to read history of release %s: %w", name, err)
	}
	return provisioning.PresenceExists, nil
}

// AddRepo registers a chart repository and downloads its index.
func (c *Client) AddRepo(name, url string) error {
	f, err := repo.LoadFile(c.settings.RepositoryConfig)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if os.IsNotExist(err) {
		f = repo.NewFile()
	}

	entry := repo.Entry{Name: name, URL: url}

	r, err := repo.NewChartRepository(&entry, getter.All(c.settings))
	if err != nil {
		return err
	}
	if _, err := r.DownloadIndexFile(); err != nil {
		return fmt.Errorf("failed to download index for repo %s: %w", name, err)
	}

	f.Update(&entry)
	return f.WriteFile(c.settings.RepositoryConfig, 0o644)
}

func (c *Client) actionConfig(namespace string) (*action.Configuration, error) {
	actionConfig := new(action.Configuration)
	restGetter := newRESTClientGetter(c.restConfig, namespace)

	// No-op logger: helm's debug output drowns the observer events.
	if err := actionConfig.Init(restGetter, namespace, os.Getenv("HELM_DRIVER"), func(string, ...interface{}) {}); err != nil {
		return nil, fmt.Errorf("failed to initialize helm action config: %w", err)
	}
	return actionConfig, nil
}

func (c *Client) loadChart(repoURL, chartName, version string) (*chart.Chart, error) {
	chartPath, err := repo.FindChartInRepoURL(
		repoURL,
		chartName,
		version,
		"", "", "",
		getter.All(c.settings),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find chart %s in repo %s: %w", chartName, repoURL, err)
	}
	return loader.Load(chartPath)
}
