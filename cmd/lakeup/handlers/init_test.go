package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakeup/lakeup/internal/config"
)

func TestInit_WritesWizardResult(t *testing.T) {
	saveAndRestoreFactories(t)

	wizardCfg := config.Default()
	wizardCfg.Variant = config.VariantDremio
	runWizard = func(context.Context) (*config.Config, error) {
		return wizardCfg, nil
	}

	var written *config.Config
	var path string
	writeConfigFile = func(cfg *config.Config, p string) error {
		written = cfg
		path = p
		return nil
	}

	require.NoError(t, Init(context.Background(), "custom.yaml"))
	assert.Equal(t, "custom.yaml", path)
	assert.Equal(t, config.VariantDremio, written.Variant)
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreFactories(t)

	runWizard = func(context.Context) (*config.Config, error) {
		return nil, errors.New("wizard canceled: user aborted")
	}
	writeConfigFile = func(*config.Config, string) error {
		t.Fatal("config must not be written after a canceled wizard")
		return nil
	}

	err := Init(context.Background(), "lakeup.yaml")
	assert.Error(t, err)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, validateName("lakehouse"))
	assert.NoError(t, validateName("lake-house-2"))
	assert.Error(t, validateName(""))
	assert.Error(t, validateName("Lakehouse"))
	assert.Error(t, validateName("-lakehouse"))
	assert.Error(t, validateName("lakehouse-"))
}

func TestSplitBuckets(t *testing.T) {
	assert.Equal(t, []string{"raw", "curated"}, splitBuckets("raw, curated"))
	assert.Equal(t, []string{"raw"}, splitBuckets("raw,,  "))
	assert.Nil(t, splitBuckets(""))
}
