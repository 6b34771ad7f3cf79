package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
)

// hclFile mirrors Config for gohcl. Every field is optional so that a file
// only overrides what it names.
type hclFile struct {
	Layout *hclLayout `hcl:"layout,block"`
	Render *hclRender `hcl:"render,block"`
	Cache  *hclCache  `hcl:"cache,block"`
	Server *hclServer `hcl:"server,block"`
	Store  *hclStore  `hcl:"store,block"`
}

type hclLayout struct {
	Merge     *bool   `hcl:"merge,optional"`
	WidthMode *string `hcl:"width_mode,optional"`
	Pivot     *string `hcl:"pivot,optional"`
}

type hclRender struct {
	Formats []string `hcl:"formats,optional"`
	Scale   *float64 `hcl:"scale,optional"`
	Labels  *bool    `hcl:"labels,optional"`
	Palette []string `hcl:"palette,optional"`
}

type hclCache struct {
	Backend  *string `hcl:"backend,optional"`
	Dir      *string `hcl:"dir,optional"`
	RedisURL *string `hcl:"redis_url,optional"`
	TTL      *string `hcl:"ttl,optional"`
}

type hclServer struct {
	Addr         *string `hcl:"addr,optional"`
	ReadTimeout  *string `hcl:"read_timeout,optional"`
	WriteTimeout *string `hcl:"write_timeout,optional"`
	MaxBodyBytes *int64  `hcl:"max_body_bytes,optional"`
}

type hclStore struct {
	Backend    *string `hcl:"backend,optional"`
	MongoURI   *string `hcl:"mongo_uri,optional"`
	Database   *string `hcl:"database,optional"`
	Collection *string `hcl:"collection,optional"`
}

// evalContext exposes the process environment as the "env" object, so a
// file can say redis_url = env.REDIS_URL.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !validIdent(k) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

// validIdent reports whether k can be used as an attribute name.
func validIdent(k string) bool {
	if k == "" {
		return false
	}
	for i, r := range k {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// mergeHCL decodes an HCL file over c.
func (c *Config) mergeHCL(path string) error {
	if _, err := os.Stat(path); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, diags, "parse %s", path)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(f.Body, evalContext(), &parsed); diags.HasErrors() {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, diags, "decode %s", path)
	}
	if err := c.applyHCL(parsed); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return nil
}

func (c *Config) applyHCL(f hclFile) error {
	if l := f.Layout; l != nil {
		set(&c.Layout.Merge, l.Merge)
		set(&c.Layout.WidthMode, l.WidthMode)
		set(&c.Layout.Pivot, l.Pivot)
	}
	if r := f.Render; r != nil {
		if r.Formats != nil {
			c.Render.Formats = r.Formats
		}
		if r.Palette != nil {
			c.Render.Palette = r.Palette
		}
		set(&c.Render.Scale, r.Scale)
		set(&c.Render.Labels, r.Labels)
	}
	if cc := f.Cache; cc != nil {
		set(&c.Cache.Backend, cc.Backend)
		set(&c.Cache.Dir, cc.Dir)
		set(&c.Cache.RedisURL, cc.RedisURL)
		if err := setDuration(&c.Cache.TTL, cc.TTL); err != nil {
			return err
		}
	}
	if s := f.Server; s != nil {
		set(&c.Server.Addr, s.Addr)
		set(&c.Server.MaxBodyBytes, s.MaxBodyBytes)
		if err := setDuration(&c.Server.ReadTimeout, s.ReadTimeout); err != nil {
			return err
		}
		if err := setDuration(&c.Server.WriteTimeout, s.WriteTimeout); err != nil {
			return err
		}
	}
	if s := f.Store; s != nil {
		set(&c.Store.Backend, s.Backend)
		set(&c.Store.MongoURI, s.MongoURI)
		set(&c.Store.Database, s.Database)
		set(&c.Store.Collection, s.Collection)
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *Duration, v *string) error {
	if v == nil {
		return nil
	}
	return dst.UnmarshalText([]byte(*v))
}
