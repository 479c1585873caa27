package ogmo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0x80), c.G)
	assert.Equal(t, uint8(0x00), c.B)
	assert.False(t, c.HasAlpha)
	assert.Equal(t, "#ff8000", c.String())

	c, err = ParseColor("#ff800080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)
	assert.True(t, c.HasAlpha)
	assert.Equal(t, "#ff800080", c.String())

	for _, bad := range []string{"", "ff8000", "#ff80", "#zzxxyy", "#ff8000801"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorJSON(t *testing.T) {
	out, err := json.Marshal(RGBA(0x28, 0x2c, 0x34, 0xff))
	require.NoError(t, err)
	assert.Equal(t, `"#282c34ff"`, string(out))

	var c Color
	require.NoError(t, json.Unmarshal([]byte(`"#102030"`), &c))
	assert.Equal(t, RGB(0x10, 0x20, 0x30), c)

	var mismatchErr *TypeMismatchError
	err = json.Unmarshal([]byte(`42`), &c)
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, "number", mismatchErr.Actual)
}

func TestValueAccessors(t *testing.T) {
	v := IntValue("count", 7)
	assert.Equal(t, ValueInteger, v.Kind())
	n, err := v.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, err = v.Str()
	var unpackErr *UnpackError
	require.ErrorAs(t, err, &unpackErr)
	assert.Equal(t, "String", unpackErr.Expected)
	assert.Equal(t, "Integer", unpackErr.Actual)
	assert.Equal(t, `cannot unpack Integer as String`, err.Error())

	b, err := BoolValue("on", true).Bool()
	require.NoError(t, err)
	assert.True(t, b)

	choice, err := EnumValue("theme", "cave").Enum()
	require.NoError(t, err)
	assert.Equal(t, "cave", choice)

	list, err := StringArrayValue("tags", []string{"a", "b"}).StringArray()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list)

	col, err := ColorValue("tint", RGB(1, 2, 3)).Color()
	require.NoError(t, err)
	assert.Equal(t, RGB(1, 2, 3), col)
}

func TestValueMarshal(t *testing.T) {
	out, err := json.Marshal(Values{
		IntValue("count", 5),
		FloatValue("ratio", 5),
		FloatValue("half", 0.5),
		StringValue("name", "pita"),
		BoolValue("on", true),
		StringArrayValue("tags", nil),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"count": 5,
		"ratio": 5.0,
		"half": 0.5,
		"name": "pita",
		"on": true,
		"tags": []
	}`, string(out))
}

func TestValuesGet(t *testing.T) {
	vs := Values{IntValue("a", 1), IntValue("b", 2)}

	b, ok := vs.Get("b")
	require.True(t, ok)
	n, err := b.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok = vs.Get("c")
	assert.False(t, ok)
}
