package icumsg

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/itsatony/go-cuserr"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadDir loads every supported catalog file directly under dir. Files are
// named <locale>.<ext> with ext one of .yaml, .yml, .json, or .toml; entries
// with other extensions and subdirectories are skipped. Works with any fs.FS,
// including embed.FS.
func (c *Catalog) LoadDir(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return NewCatalogFileError(ErrMsgFileReadFailed, dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := fileFormat(entry.Name()); !ok {
			continue
		}
		if err := c.LoadFile(fsys, path.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile loads one catalog file; the locale is the file name without its
// extension. Unsupported extensions fail with a catalog file error.
func (c *Catalog) LoadFile(fsys fs.FS, name string) error {
	format, ok := fileFormat(name)
	if !ok {
		return NewCatalogFileError(ErrMsgFileUnsupported, name, nil)
	}
	locale := strings.TrimSuffix(path.Base(name), path.Ext(name))

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return NewCatalogFileError(ErrMsgFileReadFailed, name, err)
	}
	if err := c.LoadBytes(locale, data, format); err != nil {
		return annotateError(err, MetaKeyFile, name)
	}

	c.logger.Debug(LogMsgCatalogFile, zap.String(LogFieldFile, name))
	return nil
}

// LoadBytes loads catalog content for one locale from raw bytes in the given
// format (FileFormatYAML, FileFormatJSON, or FileFormatTOML). Nested tables
// flatten to dot-separated message ids; every leaf must be a string.
func (c *Catalog) LoadBytes(locale string, data []byte, format string) error {
	raw, err := decodeCatalogBytes(data, format)
	if err != nil {
		return err
	}

	flat := make(map[string]string)
	if err := flattenMessages("", raw, flat); err != nil {
		return err
	}

	ids := make([]string, 0, len(flat))
	for id := range flat {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := c.AddMessage(locale, id, flat[id]); err != nil {
			return annotateError(err, MetaKeyMessageID, id)
		}
	}
	return nil
}

func decodeCatalogBytes(data []byte, format string) (map[string]any, error) {
	raw := make(map[string]any)
	switch format {
	case FileFormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, NewCatalogFileError(ErrMsgFileDecodeFailed, "", err)
		}
	case FileFormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, NewCatalogFileError(ErrMsgFileDecodeFailed, "", err)
		}
	case FileFormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, NewCatalogFileError(ErrMsgFileDecodeFailed, "", err)
		}
	default:
		return nil, NewCatalogFileError(ErrMsgFileUnsupported, "", nil)
	}
	return raw, nil
}

// flattenMessages turns nested tables into dot-separated ids. A value that is
// neither a string nor a nested table fails the load.
func flattenMessages(prefix string, table map[string]any, out map[string]string) error {
	for key, value := range table {
		id := key
		if prefix != "" {
			id = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[id] = v
		case map[string]any:
			if err := flattenMessages(id, v, out); err != nil {
				return err
			}
		default:
			return annotateError(
				NewCatalogFileError(ErrMsgFlattenBadValue, "", nil), MetaKeyMessageID, id)
		}
	}
	return nil
}

// fileFormat maps a file name to its catalog format by extension.
func fileFormat(name string) (string, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FileFormatYAML, true
	case ".json":
		return FileFormatJSON, true
	case ".toml":
		return FileFormatTOML, true
	default:
		return "", false
	}
}

// annotateError attaches context metadata to taxonomy errors in place,
// preserving their kind for the Is* predicates. Foreign errors pass through.
func annotateError(err error, key, value string) error {
	var customErr *cuserr.CustomError
	if errors.As(err, &customErr) {
		customErr.WithMetadata(key, value)
	}
	return err
}
