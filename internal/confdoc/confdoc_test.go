package confdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hiveValues() map[string]string {
	return map[string]string{
		FieldAccessKey:     "AKIAEXAMPLE",
		FieldSecretKey:     "s3cr3t",
		FieldEndpoint:      "minio.lakehouse.svc.cluster.local:9000",
		FieldWarehousePath: "s3a://warehouse/",
	}
}

func TestHiveSite_RendersValuesVerbatim(t *testing.T) {
	out, err := HiveSite.Render(hiveValues())
	require.NoError(t, err)

	assert.Contains(t, out, "<value>s3a://warehouse/</value>")
	assert.Contains(t, out, "<value>http://minio.lakehouse.svc.cluster.local:9000</value>")
	assert.Contains(t, out, "<value>AKIAEXAMPLE</value>")
	assert.Contains(t, out, "<value>s3cr3t</value>")
	assert.NotContains(t, out, "{{")
}

func TestRender_MissingValueFails(t *testing.T) {
	values := hiveValues()
	delete(values, FieldSecretKey)

	_, err := HiveSite.Render(values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hive-site")
}

func TestRender_ChangedValueOnlyAffectsItsField(t *testing.T) {
	base, err := HiveSite.Render(hiveValues())
	require.NoError(t, err)

	changed := hiveValues()
	changed[FieldAccessKey] = "ROTATED"
	out, err := HiveSite.Render(changed)
	require.NoError(t, err)

	assert.NotEqual(t, base, out)
	assert.Contains(t, out, "<value>ROTATED</value>")
	assert.Contains(t, out, "<value>s3cr3t</value>")
}

func TestTrinoHiveCatalog_Render(t *testing.T) {
	out, err := TrinoHiveCatalog.Render(map[string]string{
		FieldAccessKey:    "ak",
		FieldSecretKey:    "sk",
		FieldEndpoint:     "minio:9000",
		FieldMetastoreURI: "thrift://metastore:9083",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "connector.name=hive")
	assert.Contains(t, out, "hive.metastore.uri=thrift://metastore:9083")
	assert.Contains(t, out, "hive.s3.endpoint=http://minio:9000")
}

func TestDremioConf_QuotesCredentials(t *testing.T) {
	out, err := DremioConf.Render(map[string]string{
		FieldAccessKey:     "ak",
		FieldSecretKey:     `pass"word`,
		FieldEndpoint:      "minio:9000",
		FieldCatalogBucket: "catalog",
	})
	require.NoError(t, err)

	assert.Contains(t, out, `paths.dist: "dremioS3:///catalog"`)
	assert.Contains(t, out, `aws.secret.key: "pass\"word"`)
	assert.Contains(t, out, `aws.endpoint: "http://minio:9000"`)
}
