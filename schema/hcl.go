package schema

import (
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	json "github.com/json-iterator/go"
	"github.com/zclconf/go-cty/cty"
)

// attribute order of written HCL documents
var hclAttributes = []string{
	"name",
	"lanes",
	"lane_bounds",
	"elements",
	"data_objects",
	"layout",
	"data_associations",
	"flows",
	"settings",
}

type hclCodec struct{}

func (c *hclCodec) encode(lit *literal) ([]byte, error) {
	data, err := json.Marshal(lit)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]interface{})
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for _, name := range hclAttributes {
		value, ok := doc[name]
		if !ok {
			continue
		}
		body.SetAttributeValue(name, toCty(value))
	}
	return f.Bytes(), nil
}

func (c *hclCodec) decode(data []byte) (*literal, error) {
	file, diags := hclsyntax.ParseConfig(data, "layout.hcl", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	doc := make(map[string]interface{}, len(attrs))
	for name, attr := range attrs {
		value, vdiags := attr.Expr.Value(nil)
		if vdiags.HasErrors() {
			return nil, vdiags
		}
		v, err := fromCty(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		doc[name] = v
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	lit := &literal{}
	if err = json.Unmarshal(out, lit); err != nil {
		return nil, err
	}
	return lit, nil
}

func toCty(v interface{}) cty.Value {
	switch tv := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case string:
		return cty.StringVal(tv)
	case bool:
		return cty.BoolVal(tv)
	case float64:
		if tv == math.Trunc(tv) {
			return cty.NumberIntVal(int64(tv))
		}
		return cty.NumberFloatVal(tv)
	case []interface{}:
		if len(tv) == 0 {
			return cty.EmptyTupleVal
		}
		values := make([]cty.Value, 0, len(tv))
		for _, item := range tv {
			values = append(values, toCty(item))
		}
		return cty.TupleVal(values)
	case map[string]interface{}:
		if len(tv) == 0 {
			return cty.EmptyObjectVal
		}
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		values := make(map[string]cty.Value, len(tv))
		for _, k := range keys {
			values[k] = toCty(tv[k])
		}
		return cty.ObjectVal(values)
	}
	return cty.StringVal(fmt.Sprint(v))
}

func fromCty(v cty.Value) (interface{}, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("unknown value")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]interface{}, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]interface{})
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			item, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = item
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}
