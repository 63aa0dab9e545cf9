package schema

import (
	"path/filepath"
	"sort"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/vine-io/flowlayout/api"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v2"
)

// Format is a written form of a layout config.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatHCL     Format = "hcl"
	FormatMsgpack Format = "msgpack"
)

type codec interface {
	encode(lit *literal) ([]byte, error)
	decode(data []byte) (*literal, error)
}

var codecs = map[Format]codec{
	FormatJSON:    &jsonCodec{},
	FormatYAML:    &yamlCodec{},
	FormatHCL:     &hclCodec{},
	FormatMsgpack: &msgpackCodec{},
}

var formatAliases = map[string]Format{
	"json":    FormatJSON,
	"yaml":    FormatYAML,
	"yml":     FormatYAML,
	"hcl":     FormatHCL,
	"msgpack": FormatMsgpack,
	"mp":      FormatMsgpack,
}

// Formats lists the supported formats.
func Formats() []Format {
	out := make([]Format, 0, len(codecs))
	for f := range codecs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ParseFormat(text string) (Format, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimPrefix(text, "."))]
	if !ok {
		return "", api.BadRequest("unsupported format %q", text)
	}
	return f, nil
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Marshal writes c in the given format.
func Marshal(c *LayoutConfig, f Format) ([]byte, error) {
	cd, ok := codecs[f]
	if !ok {
		return nil, api.BadRequest("unsupported format %q", f)
	}
	data, err := cd.encode(toLiteral(c))
	if err != nil {
		return nil, api.InternalServerError("encode %s: %v", f, err)
	}
	return data, nil
}

// Unmarshal reads a config in the given format and validates it.
func Unmarshal(data []byte, f Format) (*LayoutConfig, error) {
	lit, err := decodeLiteral(data, f)
	if err != nil {
		return nil, err
	}
	c, err := fromLiteral(lit)
	if err != nil {
		return nil, err
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeLiteral(data []byte, f Format) (*literal, error) {
	cd, ok := codecs[f]
	if !ok {
		return nil, api.BadRequest("unsupported format %q", f)
	}
	lit, err := cd.decode(data)
	if err != nil {
		return nil, api.BadRequest("decode %s: %v", f, err)
	}
	return lit, nil
}

type jsonCodec struct{}

func (c *jsonCodec) encode(lit *literal) ([]byte, error) {
	return json.MarshalIndent(lit, "", "  ")
}

func (c *jsonCodec) decode(data []byte) (*literal, error) {
	lit := &literal{}
	if err := json.Unmarshal(data, lit); err != nil {
		return nil, err
	}
	return lit, nil
}

type yamlCodec struct{}

func (c *yamlCodec) encode(lit *literal) ([]byte, error) {
	return yaml.Marshal(lit)
}

func (c *yamlCodec) decode(data []byte) (*literal, error) {
	lit := &literal{}
	if err := yaml.Unmarshal(data, lit); err != nil {
		return nil, err
	}
	return lit, nil
}

type msgpackCodec struct{}

func (c *msgpackCodec) encode(lit *literal) ([]byte, error) {
	return msgpack.Marshal(lit)
}

func (c *msgpackCodec) decode(data []byte) (*literal, error) {
	lit := &literal{}
	if err := msgpack.Unmarshal(data, lit); err != nil {
		return nil, err
	}
	return lit, nil
}
