// Package confdoc generates the textual configuration documents handed
// to release installs. Each document has a fixed schema with named
// placeholders; rendering is plain value substitution over the current
// runtime values and fails on any placeholder without a value, never
// producing a blank substitution. Documents are regenerated on every
// run because values such as access keys change between bring-ups.
package confdoc

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Document is one fixed configuration schema.
type Document struct {
	Name   string
	Schema string
}

// Render substitutes values into the document schema. A placeholder
// with no corresponding value is an error naming the missing key.
func (d Document) Render(values map[string]string) (string, error) {
	tmpl, err := template.New(d.Name).
		Funcs(sprig.FuncMap()).
		Option("missingkey=error").
		Parse(d.Schema)
	if err != nil {
		return "", fmt.Errorf("invalid schema for document %s: %w", d.Name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("failed to render document %s: %w", d.Name, err)
	}
	return buf.String(), nil
}

// Placeholder keys shared by the document schemas.
const (
	FieldAccessKey     = "access_key"
	FieldSecretKey     = "secret_key"
	FieldEndpoint      = "endpoint"
	FieldMetastoreURI  = "metastore_uri"
	FieldWarehousePath = "warehouse_path"
	FieldCatalogBucket = "catalog_bucket"
)
