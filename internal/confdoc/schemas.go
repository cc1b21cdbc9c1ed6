package confdoc

// The schemas below are fixed at design time. Placeholders reference
// the Field* keys; everything else is literal text.

// HiveSite is the hive-site.xml handed to the metastore release. The
// metastore talks to the object store through the s3a connector.
var HiveSite = Document{
	Name: "hive-site",
	Schema: `<?xml version="1.0" encoding="UTF-8"?>
<configuration>
  <property>
    <name>hive.metastore.warehouse.dir</name>
    <value>{{ .warehouse_path }}</value>
  </property>
  <property>
    <name>fs.s3a.endpoint</name>
    <value>http://{{ .endpoint }}</value>
  </property>
  <property>
    <name>fs.s3a.access.key</name>
    <value>{{ .access_key }}</value>
  </property>
  <property>
    <name>fs.s3a.secret.key</name>
    <value>{{ .secret_key }}</value>
  </property>
  <property>
    <name>fs.s3a.path.style.access</name>
    <value>true</value>
  </property>
  <property>
    <name>fs.s3a.connection.ssl.enabled</name>
    <value>false</value>
  </property>
</configuration>
`,
}

// TrinoHiveCatalog is the hive catalog properties file mounted into the
// query engine.
var TrinoHiveCatalog = Document{
	Name: "trino-hive-catalog",
	Schema: `connector.name=hive
hive.metastore.uri={{ .metastore_uri }}
hive.s3.endpoint=http://{{ .endpoint }}
hive.s3.aws-access-key={{ .access_key }}
hive.s3.aws-secret-key={{ .secret_key }}
hive.s3.path-style-access=true
hive.s3.ssl.enabled=false
hive.non-managed-table-writes-enabled=true
`,
}

// DremioConf is the catalog engine's configuration with its dedicated
// distributed-storage bucket on the object store.
var DremioConf = Document{
	Name: "dremio-conf",
	Schema: `paths.dist: "dremioS3:///{{ .catalog_bucket }}"
services.coordinator.enabled: true
services.executor.enabled: true
debug.dist.s3.file.status.check.enabled: false
aws.access.key: {{ .access_key | quote }}
aws.secret.key: {{ .secret_key | quote }}
aws.endpoint: {{ printf "http://%s" .endpoint | quote }}
aws.path.style.access: true
`,
}
