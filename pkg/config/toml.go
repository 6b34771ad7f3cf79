package config

import (
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
)

// mergeTOML decodes a TOML file over c. Keys not present in the file keep
// their current values; unknown keys are an error.
func (c *Config) mergeTOML(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, keys[0].String())
	}
	return nil
}
