package ogmo

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ParseProject decodes an Ogmo project from JSON text. Decoding is atomic:
// the first schema violation aborts the parse and no partial project is
// returned.
func ParseProject(data []byte) (*Project, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedInputError{Err: err}
	}
	return decodeProject(raw)
}

// ParseLevel decodes an Ogmo level from JSON text. Decoding is atomic: the
// first schema violation aborts the parse and no partial level is returned.
func ParseLevel(data []byte) (*Level, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedInputError{Err: err}
	}
	return decodeLevel(raw)
}

// jsonTypeName names the JSON type of a raw value, for error messages
func jsonTypeName(raw []byte) string {
	for _, c := range raw {
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		case c == '{':
			return "object"
		case c == '[':
			return "array"
		case c == '"':
			return "string"
		case c == 't' || c == 'f':
			return "boolean"
		case c == 'n':
			return "null"
		default:
			return "number"
		}
	}
	return "empty"
}

// jsonObj wraps one JSON object and the path it sits at, so every field read
// can report a precise dotted path on failure
type jsonObj struct {
	path   string
	fields map[string]json.RawMessage
}

func newObj(path string, raw json.RawMessage) (*jsonObj, error) {
	if t := jsonTypeName(raw); t != "object" {
		return nil, &TypeMismatchError{Path: path, Expected: "object", Actual: t}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &TypeMismatchError{Path: path, Expected: "object", Actual: jsonTypeName(raw)}
	}
	return &jsonObj{path: path, fields: fields}, nil
}

// at joins a key onto the object's path
func (o *jsonObj) at(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

func (o *jsonObj) has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

func (o *jsonObj) raw(key string) (json.RawMessage, bool) {
	raw, ok := o.fields[key]
	return raw, ok
}

func (o *jsonObj) required(key string) (json.RawMessage, error) {
	raw, ok := o.fields[key]
	if !ok {
		return nil, &MissingFieldError{Path: o.at(key)}
	}
	return raw, nil
}

func (o *jsonObj) str(key string) (string, error) {
	raw, err := o.required(key)
	if err != nil {
		return "", err
	}
	return decodeString(o.at(key), raw)
}

func (o *jsonObj) optStr(key string) (*string, error) {
	raw, ok := o.fields[key]
	if !ok {
		return nil, nil
	}
	s, err := decodeString(o.at(key), raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeString(path string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &TypeMismatchError{Path: path, Expected: "string", Actual: jsonTypeName(raw)}
	}
	return s, nil
}

func (o *jsonObj) boolean(key string) (bool, error) {
	raw, err := o.required(key)
	if err != nil {
		return false, err
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, &TypeMismatchError{Path: o.at(key), Expected: "boolean", Actual: jsonTypeName(raw)}
	}
	return b, nil
}

func (o *jsonObj) optBool(key string) (*bool, error) {
	if !o.has(key) {
		return nil, nil
	}
	b, err := o.boolean(key)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (o *jsonObj) number(key string) (json.Number, error) {
	raw, err := o.required(key)
	if err != nil {
		return "", err
	}
	if t := jsonTypeName(raw); t != "number" {
		return "", &TypeMismatchError{Path: o.at(key), Expected: "number", Actual: t}
	}
	return json.Number(bytes.TrimSpace(raw)), nil
}

func (o *jsonObj) int64(key string) (int64, error) {
	n, err := o.number(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, &NumericRangeError{Path: o.at(key), Value: n.String()}
		}
		return 0, &TypeMismatchError{Path: o.at(key), Expected: "integer", Actual: "float"}
	}
	return v, nil
}

func (o *jsonObj) integer(key string) (int, error) {
	v, err := o.int64(key)
	if err != nil {
		return 0, err
	}
	if v < minInt || v > maxInt {
		return 0, &NumericRangeError{Path: o.at(key), Value: strconv.FormatInt(v, 10)}
	}
	return int(v), nil
}

const (
	maxInt = int64(^uint(0) >> 1)
	minInt = -maxInt - 1
)

// intOr reads an optional integer, falling back to a default when absent
func (o *jsonObj) intOr(key string, fallback int) (int, error) {
	if !o.has(key) {
		return fallback, nil
	}
	return o.integer(key)
}

func (o *jsonObj) float(key string) (float64, error) {
	n, err := o.number(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, &NumericRangeError{Path: o.at(key), Value: n.String()}
	}
	return v, nil
}

func (o *jsonObj) optFloat(key string) (*float64, error) {
	if !o.has(key) {
		return nil, nil
	}
	v, err := o.float(key)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (o *jsonObj) arr(key string) ([]json.RawMessage, error) {
	raw, err := o.required(key)
	if err != nil {
		return nil, err
	}
	return decodeArray(o.at(key), raw)
}

func decodeArray(path string, raw json.RawMessage) ([]json.RawMessage, error) {
	if t := jsonTypeName(raw); t != "array" {
		return nil, &TypeMismatchError{Path: path, Expected: "array", Actual: t}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &TypeMismatchError{Path: path, Expected: "array", Actual: jsonTypeName(raw)}
	}
	return items, nil
}

func elemPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func (o *jsonObj) strings(key string) ([]string, error) {
	items, err := o.arr(key)
	if err != nil {
		return nil, err
	}
	return decodeStrings(o.at(key), items)
}

func decodeStrings(path string, items []json.RawMessage) ([]string, error) {
	out := make([]string, len(items))
	for i, item := range items {
		s, err := decodeString(elemPath(path, i), item)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (o *jsonObj) stringMap(key string) (map[string]string, error) {
	raw, err := o.required(key)
	if err != nil {
		return nil, err
	}
	if t := jsonTypeName(raw); t != "object" {
		return nil, &TypeMismatchError{Path: o.at(key), Expected: "object", Actual: t}
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &TypeMismatchError{Path: o.at(key), Expected: "object of strings", Actual: "object"}
	}
	return m, nil
}

func (o *jsonObj) obj(key string) (*jsonObj, error) {
	raw, err := o.required(key)
	if err != nil {
		return nil, err
	}
	return newObj(o.at(key), raw)
}

func (o *jsonObj) vec2i(key string) (Vec2i, error) {
	child, err := o.obj(key)
	if err != nil {
		return Vec2i{}, err
	}
	x, err := child.integer("x")
	if err != nil {
		return Vec2i{}, err
	}
	y, err := child.integer("y")
	if err != nil {
		return Vec2i{}, err
	}
	return Vec2i{X: x, Y: y}, nil
}

func (o *jsonObj) vec2(key string) (Vec2, error) {
	child, err := o.obj(key)
	if err != nil {
		return Vec2{}, err
	}
	x, err := child.float("x")
	if err != nil {
		return Vec2{}, err
	}
	y, err := child.float("y")
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: x, Y: y}, nil
}

func (o *jsonObj) color(key string) (Color, error) {
	s, err := o.str(key)
	if err != nil {
		return Color{}, err
	}
	c, err := ParseColor(s)
	if err != nil {
		return Color{}, &TypeMismatchError{Path: o.at(key), Expected: "hex color string", Actual: "string"}
	}
	return c, nil
}

// values reads an optional custom-values object, preserving its key order.
// An absent key and an empty object both yield the empty collection.
func (o *jsonObj) values(key string) (Values, error) {
	raw, ok := o.raw(key)
	if !ok {
		return nil, nil
	}
	return decodeValues(o.at(key), raw)
}

func decodeValues(path string, raw json.RawMessage) (Values, error) {
	if t := jsonTypeName(raw); t != "object" {
		return nil, &TypeMismatchError{Path: path, Expected: "object", Actual: t}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil, &MalformedInputError{Err: err}
	}

	var out Values
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &MalformedInputError{Err: err}
		}
		name := tok.(string)
		var vraw json.RawMessage
		if err := dec.Decode(&vraw); err != nil {
			return nil, &MalformedInputError{Err: err}
		}
		v, err := decodeValue(path+"."+name, name, vraw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeValue infers a value's kind from its JSON shape. The level format
// stores no type tag, so enum and color values come back as strings here;
// cross-reference the project's templates for the declared kind.
func decodeValue(path, name string, raw json.RawMessage) (Value, error) {
	switch jsonTypeName(raw) {
	case "boolean":
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, &MalformedInputError{Err: err}
		}
		return BoolValue(name, b), nil
	case "string":
		s, err := decodeString(path, raw)
		if err != nil {
			return Value{}, err
		}
		return StringValue(name, s), nil
	case "number":
		lit := string(bytes.TrimSpace(raw))
		if bytes.ContainsAny([]byte(lit), ".eE") {
			f, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return Value{}, &NumericRangeError{Path: path, Value: lit}
			}
			return FloatValue(name, f), nil
		}
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return Value{}, &NumericRangeError{Path: path, Value: lit}
		}
		return IntValue(name, i), nil
	case "array":
		items, err := decodeArray(path, raw)
		if err != nil {
			return Value{}, err
		}
		list, err := decodeStrings(path, items)
		if err != nil {
			return Value{}, err
		}
		return StringArrayValue(name, list), nil
	default:
		return Value{}, &TypeMismatchError{Path: path, Expected: "boolean, number, string or string array", Actual: jsonTypeName(raw)}
	}
}

func decodeProject(raw json.RawMessage) (*Project, error) {
	o, err := newObj("", raw)
	if err != nil {
		return nil, err
	}

	p := &Project{}
	if p.Name, err = o.str("name"); err != nil {
		return nil, err
	}
	if p.OgmoVersion, err = o.str("ogmoVersion"); err != nil {
		return nil, err
	}
	if p.LevelPaths, err = o.strings("levelPaths"); err != nil {
		return nil, err
	}
	if p.BackgroundColor, err = o.color("backgroundColor"); err != nil {
		return nil, err
	}
	if p.GridColor, err = o.color("gridColor"); err != nil {
		return nil, err
	}
	if p.AnglesRadians, err = o.boolean("anglesRadians"); err != nil {
		return nil, err
	}
	if p.DefaultExportMode, err = o.str("defaultExportMode"); err != nil {
		return nil, err
	}
	if p.DirectoryDepth, err = o.integer("directoryDepth"); err != nil {
		return nil, err
	}
	if p.LevelDefaultSize, err = o.vec2i("levelDefaultSize"); err != nil {
		return nil, err
	}
	if p.LevelMinSize, err = o.vec2i("levelMinSize"); err != nil {
		return nil, err
	}
	if p.LevelMaxSize, err = o.vec2i("levelMaxSize"); err != nil {
		return nil, err
	}
	if p.EntityTags, err = o.strings("entityTags"); err != nil {
		return nil, err
	}
	if p.LayerGridDefaultSize, err = o.vec2i("layerGridDefaultSize"); err != nil {
		return nil, err
	}

	templates, err := o.arr("levelValues")
	if err != nil {
		return nil, err
	}
	for i, t := range templates {
		vt, err := decodeValueTemplate(elemPath(o.at("levelValues"), i), t)
		if err != nil {
			return nil, err
		}
		p.LevelValues = append(p.LevelValues, vt)
	}

	layers, err := o.arr("layers")
	if err != nil {
		return nil, err
	}
	for i, l := range layers {
		lt, err := decodeLayerTemplate(elemPath(o.at("layers"), i), l)
		if err != nil {
			return nil, err
		}
		p.Layers = append(p.Layers, lt)
	}

	entities, err := o.arr("entities")
	if err != nil {
		return nil, err
	}
	for i, e := range entities {
		et, err := decodeEntityTemplate(elemPath(o.at("entities"), i), e)
		if err != nil {
			return nil, err
		}
		p.Entities = append(p.Entities, et)
	}

	tilesets, err := o.arr("tilesets")
	if err != nil {
		return nil, err
	}
	for i, t := range tilesets {
		ts, err := decodeTileset(elemPath(o.at("tilesets"), i), t)
		if err != nil {
			return nil, err
		}
		p.Tilesets = append(p.Tilesets, ts)
	}

	return p, nil
}

func decodeValueTemplate(path string, raw json.RawMessage) (ValueTemplate, error) {
	o, err := newObj(path, raw)
	if err != nil {
		return ValueTemplate{}, err
	}
	name, err := o.str("name")
	if err != nil {
		return ValueTemplate{}, err
	}
	def, err := o.str("definition")
	if err != nil {
		return ValueTemplate{}, err
	}

	var data TemplateData
	switch TemplateKind(def) {
	case TemplateBoolean:
		d := BooleanTemplate{}
		if d.Default, err = o.boolean("defaults"); err != nil {
			return ValueTemplate{}, err
		}
		data = d
	case TemplateColor:
		d := ColorTemplate{}
		if d.Default, err = o.color("defaults"); err != nil {
			return ValueTemplate{}, err
		}
		if d.IncludeAlpha, err = o.boolean("includeAlpha"); err != nil {
			return ValueTemplate{}, err
		}
		data = d
	case TemplateEnum:
		d := EnumTemplate{}
		if d.Default, err = o.integer("defaults"); err != nil {
			return ValueTemplate{}, err
		}
		if d.Choices, err = o.strings("choices"); err != nil {
			return ValueTemplate{}, err
		}
		if d.Default < -1 || d.Default >= len(d.Choices) {
			return ValueTemplate{}, &NumericRangeError{Path: o.at("defaults"), Value: strconv.Itoa(d.Default)}
		}
		data = d
	case TemplateInteger:
		d := IntegerTemplate{}
		if d.Default, err = o.int64("defaults"); err != nil {
			return ValueTemplate{}, err
		}
		if d.Bounded, err = o.boolean("bounded"); err != nil {
			return ValueTemplate{}, err
		}
		if d.Min, err = o.int64("min"); err != nil {
			return ValueTemplate{}, err
		}
		if d.Max, err = o.int64("max"); err != nil {
			return ValueTemplate{}, err
		}
		data = d
	case TemplateFloat:
		d := FloatTemplate{}
		if d.Default, err = o.float("defaults"); err != nil {
			return ValueTemplate{}, err
		}
		if d.Bounded, err = o.boolean("bounded"); err != nil {
			return ValueTemplate{}, err
		}
		if d.Min, err = o.float("min"); err != nil {
			return ValueTemplate{}, err
		}
		if d.Max, err = o.float("max"); err != nil {
			return ValueTemplate{}, err
		}
		data = d
	case TemplateString:
		d := StringTemplate{}
		if d.Default, err = o.str("defaults"); err != nil {
			return ValueTemplate{}, err
		}
		if d.MaxLength, err = o.integer("maxLength"); err != nil {
			return ValueTemplate{}, err
		}
		if d.TrimWhitespace, err = o.boolean("trimWhitespace"); err != nil {
			return ValueTemplate{}, err
		}
		data = d
	case TemplateText:
		d := TextTemplate{}
		if d.Default, err = o.str("defaults"); err != nil {
			return ValueTemplate{}, err
		}
		data = d
	case TemplateArrayString:
		d := ArrayStringTemplate{}
		if d.Default, err = o.strings("defaults"); err != nil {
			return ValueTemplate{}, err
		}
		data = d
	case TemplateArrayEnum:
		d := ArrayEnumTemplate{}
		if d.Default, err = o.strings("defaults"); err != nil {
			return ValueTemplate{}, err
		}
		if d.Choices, err = o.strings("choices"); err != nil {
			return ValueTemplate{}, err
		}
		data = d
	default:
		return ValueTemplate{}, &UnknownVariantError{Path: path, Got: def}
	}

	return ValueTemplate{Name: name, Data: data}, nil
}

// layerDefKeys maps a definition-specific field to the layer kind whose
// presence it proves, for templates without an explicit "definition" tag
var layerDefKeys = []struct {
	key  string
	kind LayerKind
}{
	{"exportMode", LayerTile},
	{"defaultTileset", LayerTile},
	{"legend", LayerGrid},
	{"requiredTags", LayerEntity},
	{"excludedTags", LayerEntity},
	{"folder", LayerDecal},
}

func decodeLayerTemplate(path string, raw json.RawMessage) (LayerTemplate, error) {
	o, err := newObj(path, raw)
	if err != nil {
		return LayerTemplate{}, err
	}

	t := LayerTemplate{}
	if t.Name, err = o.str("name"); err != nil {
		return LayerTemplate{}, err
	}
	if t.ExportID, err = o.str("exportID"); err != nil {
		return LayerTemplate{}, err
	}
	if t.GridSize, err = o.vec2i("gridSize"); err != nil {
		return LayerTemplate{}, err
	}

	// An explicit definition tag wins; otherwise fall back to presence of
	// definition-specific fields.
	var kind LayerKind
	if o.has("definition") {
		def, err := o.str("definition")
		if err != nil {
			return LayerTemplate{}, err
		}
		switch LayerKind(def) {
		case LayerTile, LayerGrid, LayerEntity, LayerDecal:
			kind = LayerKind(def)
		default:
			return LayerTemplate{}, &UnknownVariantError{Path: path, Got: def}
		}
	} else {
		var matched []string
		for _, probe := range layerDefKeys {
			if o.has(probe.key) && (len(matched) == 0 || matched[len(matched)-1] != string(probe.kind)) {
				matched = append(matched, string(probe.kind))
			}
		}
		switch len(matched) {
		case 0:
			return LayerTemplate{}, &UnknownVariantError{Path: path}
		case 1:
			kind = LayerKind(matched[0])
		default:
			return LayerTemplate{}, &AmbiguousVariantError{Path: path, Matched: matched}
		}
	}

	switch kind {
	case LayerTile:
		d := TileDef{}
		if d.ExportMode, err = decodeExportMode(o, "exportMode"); err != nil {
			return LayerTemplate{}, err
		}
		if d.ArrayMode, err = decodeArrayMode(o, "arrayMode"); err != nil {
			return LayerTemplate{}, err
		}
		if d.DefaultTileset, err = o.str("defaultTileset"); err != nil {
			return LayerTemplate{}, err
		}
		t.Data = d
	case LayerGrid:
		d := GridDef{}
		if d.ArrayMode, err = decodeArrayMode(o, "arrayMode"); err != nil {
			return LayerTemplate{}, err
		}
		if d.Legend, err = o.stringMap("legend"); err != nil {
			return LayerTemplate{}, err
		}
		t.Data = d
	case LayerEntity:
		d := EntityDef{}
		if d.RequiredTags, err = o.strings("requiredTags"); err != nil {
			return LayerTemplate{}, err
		}
		if d.ExcludedTags, err = o.strings("excludedTags"); err != nil {
			return LayerTemplate{}, err
		}
		t.Data = d
	case LayerDecal:
		d := DecalDef{}
		if d.Folder, err = o.str("folder"); err != nil {
			return LayerTemplate{}, err
		}
		if d.IncludeImageSequence, err = o.boolean("includeImageSequence"); err != nil {
			return LayerTemplate{}, err
		}
		if d.Scaleable, err = o.boolean("scaleable"); err != nil {
			return LayerTemplate{}, err
		}
		if d.Rotatable, err = o.boolean("rotatable"); err != nil {
			return LayerTemplate{}, err
		}
		items, err := o.arr("values")
		if err != nil {
			return LayerTemplate{}, err
		}
		for i, item := range items {
			vt, err := decodeValueTemplate(elemPath(o.at("values"), i), item)
			if err != nil {
				return LayerTemplate{}, err
			}
			d.Values = append(d.Values, vt)
		}
		t.Data = d
	}

	return t, nil
}

func decodeExportMode(o *jsonObj, key string) (ExportMode, error) {
	v, err := o.integer(key)
	if err != nil {
		return 0, err
	}
	if v != int(ExportIDs) && v != int(ExportCoords) {
		return 0, &NumericRangeError{Path: o.at(key), Value: strconv.Itoa(v)}
	}
	return ExportMode(v), nil
}

func decodeArrayMode(o *jsonObj, key string) (ArrayMode, error) {
	v, err := o.integer(key)
	if err != nil {
		return 0, err
	}
	if v != int(Array1D) && v != int(Array2D) {
		return 0, &NumericRangeError{Path: o.at(key), Value: strconv.Itoa(v)}
	}
	return ArrayMode(v), nil
}

func decodeEntityTemplate(path string, raw json.RawMessage) (EntityTemplate, error) {
	o, err := newObj(path, raw)
	if err != nil {
		return EntityTemplate{}, err
	}

	t := EntityTemplate{}
	if t.Name, err = o.str("name"); err != nil {
		return EntityTemplate{}, err
	}
	if t.ExportID, err = o.str("exportID"); err != nil {
		return EntityTemplate{}, err
	}
	if t.Limit, err = o.integer("limit"); err != nil {
		return EntityTemplate{}, err
	}
	if t.Size, err = o.vec2("size"); err != nil {
		return EntityTemplate{}, err
	}
	if t.Origin, err = o.vec2("origin"); err != nil {
		return EntityTemplate{}, err
	}
	if t.OriginAnchored, err = o.boolean("originAnchored"); err != nil {
		return EntityTemplate{}, err
	}
	shape, err := o.obj("shape")
	if err != nil {
		return EntityTemplate{}, err
	}
	if t.Shape.Label, err = shape.str("label"); err != nil {
		return EntityTemplate{}, err
	}
	points, err := shape.arr("points")
	if err != nil {
		return EntityTemplate{}, err
	}
	for i, p := range points {
		v, err := decodeVec2(elemPath(shape.at("points"), i), p)
		if err != nil {
			return EntityTemplate{}, err
		}
		t.Shape.Points = append(t.Shape.Points, v)
	}
	if t.Color, err = o.color("color"); err != nil {
		return EntityTemplate{}, err
	}
	if t.TileX, err = o.boolean("tileX"); err != nil {
		return EntityTemplate{}, err
	}
	if t.TileY, err = o.boolean("tileY"); err != nil {
		return EntityTemplate{}, err
	}
	if t.TileSize, err = o.vec2("tileSize"); err != nil {
		return EntityTemplate{}, err
	}
	if t.ResizeableX, err = o.boolean("resizeableX"); err != nil {
		return EntityTemplate{}, err
	}
	if t.ResizeableY, err = o.boolean("resizeableY"); err != nil {
		return EntityTemplate{}, err
	}
	if t.Rotatable, err = o.boolean("rotatable"); err != nil {
		return EntityTemplate{}, err
	}
	if t.RotationDegrees, err = o.float("rotationDegrees"); err != nil {
		return EntityTemplate{}, err
	}
	if t.CanFlipX, err = o.boolean("canFlipX"); err != nil {
		return EntityTemplate{}, err
	}
	if t.CanFlipY, err = o.boolean("canFlipY"); err != nil {
		return EntityTemplate{}, err
	}
	if t.CanSetColor, err = o.boolean("canSetColor"); err != nil {
		return EntityTemplate{}, err
	}
	if t.HasNodes, err = o.boolean("hasNodes"); err != nil {
		return EntityTemplate{}, err
	}
	if t.NodeLimit, err = o.integer("nodeLimit"); err != nil {
		return EntityTemplate{}, err
	}
	if t.NodeDisplay, err = o.integer("nodeDisplay"); err != nil {
		return EntityTemplate{}, err
	}
	if t.NodeGhost, err = o.boolean("nodeGhost"); err != nil {
		return EntityTemplate{}, err
	}
	if t.Tags, err = o.strings("tags"); err != nil {
		return EntityTemplate{}, err
	}
	values, err := o.arr("values")
	if err != nil {
		return EntityTemplate{}, err
	}
	for i, item := range values {
		vt, err := decodeValueTemplate(elemPath(o.at("values"), i), item)
		if err != nil {
			return EntityTemplate{}, err
		}
		t.Values = append(t.Values, vt)
	}
	if t.Texture, err = o.optStr("texture"); err != nil {
		return EntityTemplate{}, err
	}
	if t.TextureImage, err = o.optStr("textureImage"); err != nil {
		return EntityTemplate{}, err
	}

	return t, nil
}

func decodeVec2(path string, raw json.RawMessage) (Vec2, error) {
	o, err := newObj(path, raw)
	if err != nil {
		return Vec2{}, err
	}
	x, err := o.float("x")
	if err != nil {
		return Vec2{}, err
	}
	y, err := o.float("y")
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: x, Y: y}, nil
}

func decodeTileset(path string, raw json.RawMessage) (Tileset, error) {
	o, err := newObj(path, raw)
	if err != nil {
		return Tileset{}, err
	}

	t := Tileset{}
	if t.Label, err = o.str("label"); err != nil {
		return Tileset{}, err
	}
	if t.Path, err = o.str("path"); err != nil {
		return Tileset{}, err
	}
	if t.Image, err = o.str("image"); err != nil {
		return Tileset{}, err
	}
	if t.TileWidth, err = o.integer("tileWidth"); err != nil {
		return Tileset{}, err
	}
	if t.TileHeight, err = o.integer("tileHeight"); err != nil {
		return Tileset{}, err
	}
	if t.TileSeparationX, err = o.integer("tileSeparationX"); err != nil {
		return Tileset{}, err
	}
	if t.TileSeparationY, err = o.integer("tileSeparationY"); err != nil {
		return Tileset{}, err
	}
	if t.TileMarginX, err = o.intOr("tileMarginX", 0); err != nil {
		return Tileset{}, err
	}
	if t.TileMarginY, err = o.intOr("tileMarginY", 0); err != nil {
		return Tileset{}, err
	}

	return t, nil
}

func decodeLevel(raw json.RawMessage) (*Level, error) {
	o, err := newObj("", raw)
	if err != nil {
		return nil, err
	}

	l := &Level{}
	if l.Width, err = o.float("width"); err != nil {
		return nil, err
	}
	if l.Height, err = o.float("height"); err != nil {
		return nil, err
	}
	if l.OffsetX, err = o.float("offsetX"); err != nil {
		return nil, err
	}
	if l.OffsetY, err = o.float("offsetY"); err != nil {
		return nil, err
	}
	layers, err := o.arr("layers")
	if err != nil {
		return nil, err
	}
	for i, item := range layers {
		layer, err := decodeLayer(elemPath("layers", i), item)
		if err != nil {
			return nil, err
		}
		l.Layers = append(l.Layers, layer)
	}
	if l.Values, err = o.values("values"); err != nil {
		return nil, err
	}

	return l, nil
}

// layerStorageKeys maps each mutually exclusive storage key to the layer
// kind it identifies. Exactly one of these keys must be present on a layer
// object.
var layerStorageKeys = []struct {
	key  string
	kind LayerKind
}{
	{"data", LayerTile},
	{"data2D", LayerTile},
	{"dataCoords", LayerTileCoords},
	{"dataCoords2D", LayerTileCoords},
	{"grid", LayerGrid},
	{"grid2D", LayerGrid},
	{"entities", LayerEntity},
	{"decals", LayerDecal},
}

func decodeLayer(path string, raw json.RawMessage) (Layer, error) {
	o, err := newObj(path, raw)
	if err != nil {
		return Layer{}, err
	}

	var present []string
	for _, probe := range layerStorageKeys {
		if o.has(probe.key) {
			present = append(present, probe.key)
		}
	}
	switch len(present) {
	case 0:
		return Layer{}, &UnknownVariantError{Path: path}
	case 1:
	default:
		return Layer{}, &AmbiguousVariantError{Path: path, Matched: present}
	}
	storage := present[0]

	var header struct {
		name             string
		exportID         string
		offsetX, offsetY float64
		cellW, cellH     int
		cellsX, cellsY   int
		values           Values
	}
	if header.name, err = o.str("name"); err != nil {
		return Layer{}, err
	}
	if header.exportID, err = o.str("_eid"); err != nil {
		return Layer{}, err
	}
	if header.offsetX, err = o.float("offsetX"); err != nil {
		return Layer{}, err
	}
	if header.offsetY, err = o.float("offsetY"); err != nil {
		return Layer{}, err
	}
	if header.cellW, err = o.integer("gridCellWidth"); err != nil {
		return Layer{}, err
	}
	if header.cellH, err = o.integer("gridCellHeight"); err != nil {
		return Layer{}, err
	}
	if header.cellsX, err = o.integer("gridCellsX"); err != nil {
		return Layer{}, err
	}
	if header.cellsY, err = o.integer("gridCellsY"); err != nil {
		return Layer{}, err
	}
	if header.values, err = o.values("values"); err != nil {
		return Layer{}, err
	}

	switch storage {
	case "data", "data2D":
		t := TileLayer{
			Name: header.name, ExportID: header.exportID,
			OffsetX: header.offsetX, OffsetY: header.offsetY,
			GridCellWidth: header.cellW, GridCellHeight: header.cellH,
			GridCellsX: header.cellsX, GridCellsY: header.cellsY,
			Values: header.values,
		}
		if t.Tileset, err = o.str("tileset"); err != nil {
			return Layer{}, err
		}
		if storage == "data" {
			flat, err := o.ints("data")
			if err != nil {
				return Layer{}, err
			}
			if err := checkCellsX(o, len(flat), header.cellsX); err != nil {
				return Layer{}, err
			}
			t.Data = TileData1D(flat)
		} else {
			rows, err := o.ints2D("data2D")
			if err != nil {
				return Layer{}, err
			}
			t.Data = TileData2D(rows)
		}
		return t.AsLayer(), nil

	case "dataCoords", "dataCoords2D":
		t := TileCoordsLayer{
			Name: header.name, ExportID: header.exportID,
			OffsetX: header.offsetX, OffsetY: header.offsetY,
			GridCellWidth: header.cellW, GridCellHeight: header.cellH,
			GridCellsX: header.cellsX, GridCellsY: header.cellsY,
			Values: header.values,
		}
		if t.Tileset, err = o.str("tileset"); err != nil {
			return Layer{}, err
		}
		if storage == "dataCoords" {
			flat, err := o.ints2D("dataCoords")
			if err != nil {
				return Layer{}, err
			}
			if err := checkCellsX(o, len(flat), header.cellsX); err != nil {
				return Layer{}, err
			}
			t.Data = TileCoordsData1D(flat)
		} else {
			rows, err := o.ints3D("dataCoords2D")
			if err != nil {
				return Layer{}, err
			}
			t.Data = TileCoordsData2D(rows)
		}
		return t.AsLayer(), nil

	case "grid", "grid2D":
		g := GridLayer{
			Name: header.name, ExportID: header.exportID,
			OffsetX: header.offsetX, OffsetY: header.offsetY,
			GridCellWidth: header.cellW, GridCellHeight: header.cellH,
			GridCellsX: header.cellsX, GridCellsY: header.cellsY,
			Values: header.values,
		}
		if storage == "grid" {
			flat, err := o.strings("grid")
			if err != nil {
				return Layer{}, err
			}
			if err := checkCellsX(o, len(flat), header.cellsX); err != nil {
				return Layer{}, err
			}
			g.Data = GridData1D(flat)
		} else {
			items, err := o.arr("grid2D")
			if err != nil {
				return Layer{}, err
			}
			rows := make([][]string, len(items))
			for i, item := range items {
				rowPath := elemPath(o.at("grid2D"), i)
				rowItems, err := decodeArray(rowPath, item)
				if err != nil {
					return Layer{}, err
				}
				if rows[i], err = decodeStrings(rowPath, rowItems); err != nil {
					return Layer{}, err
				}
			}
			g.Data = GridData2D(rows)
		}
		return g.AsLayer(), nil

	case "entities":
		e := EntityLayer{
			Name: header.name, ExportID: header.exportID,
			OffsetX: header.offsetX, OffsetY: header.offsetY,
			GridCellWidth: header.cellW, GridCellHeight: header.cellH,
			GridCellsX: header.cellsX, GridCellsY: header.cellsY,
			Values: header.values,
		}
		items, err := o.arr("entities")
		if err != nil {
			return Layer{}, err
		}
		e.Entities = make([]Entity, 0, len(items))
		for i, item := range items {
			ent, err := decodeEntity(elemPath(o.at("entities"), i), item)
			if err != nil {
				return Layer{}, err
			}
			e.Entities = append(e.Entities, ent)
		}
		return e.AsLayer(), nil

	default: // decals
		d := DecalLayer{
			Name: header.name, ExportID: header.exportID,
			OffsetX: header.offsetX, OffsetY: header.offsetY,
			GridCellWidth: header.cellW, GridCellHeight: header.cellH,
			GridCellsX: header.cellsX, GridCellsY: header.cellsY,
			Values: header.values,
		}
		if d.Folder, err = o.str("folder"); err != nil {
			return Layer{}, err
		}
		items, err := o.arr("decals")
		if err != nil {
			return Layer{}, err
		}
		d.Decals = make([]Decal, 0, len(items))
		for i, item := range items {
			dec, err := decodeDecal(elemPath(o.at("decals"), i), item)
			if err != nil {
				return Layer{}, err
			}
			d.Decals = append(d.Decals, dec)
		}
		return d.AsLayer(), nil
	}
}

// checkCellsX rejects flat storage that cannot be addressed as a grid:
// non-empty 1D data needs a positive column count
func checkCellsX(o *jsonObj, n, cellsX int) error {
	if n > 0 && cellsX <= 0 {
		return &NumericRangeError{Path: o.at("gridCellsX"), Value: strconv.Itoa(cellsX)}
	}
	return nil
}

func (o *jsonObj) ints(key string) ([]int, error) {
	raw, err := o.required(key)
	if err != nil {
		return nil, err
	}
	return decodeInts(o.at(key), raw)
}

func decodeInts(path string, raw json.RawMessage) ([]int, error) {
	items, err := decodeArray(path, raw)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(items))
	for i, item := range items {
		lit := string(bytes.TrimSpace(item))
		if t := jsonTypeName(item); t != "number" {
			return nil, &TypeMismatchError{Path: elemPath(path, i), Expected: "integer", Actual: t}
		}
		v, err := strconv.Atoi(lit)
		if err != nil {
			var ne *strconv.NumError
			if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
				return nil, &NumericRangeError{Path: elemPath(path, i), Value: lit}
			}
			return nil, &TypeMismatchError{Path: elemPath(path, i), Expected: "integer", Actual: "float"}
		}
		out[i] = v
	}
	return out, nil
}

func (o *jsonObj) ints2D(key string) ([][]int, error) {
	items, err := o.arr(key)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(items))
	for i, item := range items {
		if out[i], err = decodeInts(elemPath(o.at(key), i), item); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (o *jsonObj) ints3D(key string) ([][][]int, error) {
	items, err := o.arr(key)
	if err != nil {
		return nil, err
	}
	out := make([][][]int, len(items))
	for i, item := range items {
		rowPath := elemPath(o.at(key), i)
		rowItems, err := decodeArray(rowPath, item)
		if err != nil {
			return nil, err
		}
		out[i] = make([][]int, len(rowItems))
		for j, cell := range rowItems {
			if out[i][j], err = decodeInts(elemPath(rowPath, j), cell); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func decodeEntity(path string, raw json.RawMessage) (Entity, error) {
	o, err := newObj(path, raw)
	if err != nil {
		return Entity{}, err
	}

	e := Entity{}
	if e.Name, err = o.str("name"); err != nil {
		return Entity{}, err
	}
	if e.ID, err = o.integer("id"); err != nil {
		return Entity{}, err
	}
	if e.ExportID, err = o.str("_eid"); err != nil {
		return Entity{}, err
	}
	if e.X, err = o.float("x"); err != nil {
		return Entity{}, err
	}
	if e.Y, err = o.float("y"); err != nil {
		return Entity{}, err
	}
	if e.Width, err = o.optFloat("width"); err != nil {
		return Entity{}, err
	}
	if e.Height, err = o.optFloat("height"); err != nil {
		return Entity{}, err
	}
	if e.OriginX, err = o.optFloat("originX"); err != nil {
		return Entity{}, err
	}
	if e.OriginY, err = o.optFloat("originY"); err != nil {
		return Entity{}, err
	}
	if e.Rotation, err = o.optFloat("rotation"); err != nil {
		return Entity{}, err
	}
	if e.FlippedX, err = o.optBool("flippedX"); err != nil {
		return Entity{}, err
	}
	if e.FlippedY, err = o.optBool("flippedY"); err != nil {
		return Entity{}, err
	}
	if o.has("nodes") {
		items, err := o.arr("nodes")
		if err != nil {
			return Entity{}, err
		}
		e.Nodes = make([]Vec2, 0, len(items))
		for i, item := range items {
			v, err := decodeVec2(elemPath(o.at("nodes"), i), item)
			if err != nil {
				return Entity{}, err
			}
			e.Nodes = append(e.Nodes, v)
		}
	}
	if e.Values, err = o.values("values"); err != nil {
		return Entity{}, err
	}

	return e, nil
}

func decodeDecal(path string, raw json.RawMessage) (Decal, error) {
	o, err := newObj(path, raw)
	if err != nil {
		return Decal{}, err
	}

	d := Decal{}
	if d.X, err = o.float("x"); err != nil {
		return Decal{}, err
	}
	if d.Y, err = o.float("y"); err != nil {
		return Decal{}, err
	}
	if d.Texture, err = o.str("texture"); err != nil {
		return Decal{}, err
	}
	if d.Rotation, err = o.optFloat("rotation"); err != nil {
		return Decal{}, err
	}
	if d.ScaleX, err = o.optFloat("scaleX"); err != nil {
		return Decal{}, err
	}
	if d.ScaleY, err = o.optFloat("scaleY"); err != nil {
		return Decal{}, err
	}
	if d.Values, err = o.values("values"); err != nil {
		return Decal{}, err
	}

	return d, nil
}
