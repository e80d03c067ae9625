package ftdc

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/ftdc/internal/prettyprinter"
)

// fingerprintSpace namespaces document fingerprints.
var fingerprintSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://ftd.dev/ftdc/document"))

// Fingerprint returns a name-based UUID of the canonical JSON encoding of
// doc, its own fingerprint excluded. Equal documents get equal
// fingerprints.
func Fingerprint(doc *Document) (string, error) {
	canonical := *doc
	canonical.Fingerprint = ""
	data, err := json.Marshal(&canonical)
	if err != nil {
		return "", errors.Wrap(err, "encoding document")
	}
	return uuid.NewSHA1(fingerprintSpace, data).String(), nil
}

// Marshal encodes doc as "json", "yaml" or "tree".
func Marshal(doc *Document, format string) ([]byte, error) {
	switch format {
	case "", "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, "encoding json")
		}
		return buf.Bytes(), nil
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, "encoding yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encoding yaml")
		}
		return buf.Bytes(), nil
	case "tree":
		return []byte(prettyprinter.PrintTree(doc.Root)), nil
	}
	return nil, errors.Errorf("unknown output format %q", format)
}
