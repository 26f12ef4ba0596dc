package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv2 "gopkg.in/yaml.v2"
	"gopkg.in/yaml.v3"
)

func TestFrontMatter_UnmarshalPreservesOrder(t *testing.T) {
	src := "title: Login flow\nstatus: open\ncustom_key: value\ntags:\n  - auth\n  - backend\n"

	var fm FrontMatter
	require.NoError(t, yamlv2.Unmarshal([]byte(src), &fm))

	assert.Equal(t, "Login flow", fm.Title)
	require.Len(t, fm.Meta, 3)
	assert.Equal(t, "status", fm.Meta[0].Key)
	assert.Equal(t, "custom_key", fm.Meta[1].Key)
	assert.Equal(t, "tags", fm.Meta[2].Key)
	assert.Equal(t, Strings("auth", "backend"), fm.Meta[2].Value)
}

func TestFrontMatter_MarshalTitleFirst(t *testing.T) {
	fm := FrontMatter{Title: "Login flow"}
	fm.Meta.Set("status", String("open"))
	fm.Meta.Set("tags", Strings("auth", "backend"))

	out, err := yaml.Marshal(fm)
	require.NoError(t, err)
	assert.Equal(t, "title: Login flow\nstatus: open\ntags:\n    - auth\n    - backend\n", string(out))
}

func TestFrontMatter_RoundTrip(t *testing.T) {
	fm := FrontMatter{Title: "Login flow"}
	fm.Meta.Set("status", String("open"))
	fm.Meta.Set("priority", String("high"))
	fm.Meta.Set("tags", Strings("auth"))

	out, err := yaml.Marshal(fm)
	require.NoError(t, err)

	var got FrontMatter
	require.NoError(t, yamlv2.Unmarshal(out, &got))
	assert.Equal(t, fm.Title, got.Title)
	assert.Equal(t, fm.Meta, got.Meta)
}
