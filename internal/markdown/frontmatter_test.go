package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekbozu/CopilotTaskMaster/internal/model"
)

func TestParse(t *testing.T) {
	src := `---
title: Login flow
status: open
tags:
  - auth
  - backend
---

# Login

Implement the login flow.
`
	fm, body, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "Login flow", fm.Title)

	status, ok := fm.Meta.Get(model.KeyStatus)
	require.True(t, ok)
	assert.Equal(t, "open", status.Scalar())

	tags, ok := fm.Meta.Get(model.KeyTags)
	require.True(t, ok)
	assert.Equal(t, []string{"auth", "backend"}, tags.List())

	assert.Equal(t, "# Login\n\nImplement the login flow.", body)
}

func TestParse_NoFrontmatter(t *testing.T) {
	fm, body, err := Parse(strings.NewReader("just some notes\n"))
	require.NoError(t, err)
	assert.Equal(t, "", fm.Title)
	assert.Empty(t, fm.Meta)
	assert.Equal(t, "just some notes", body)
}

func TestMarshal_RoundTrip(t *testing.T) {
	fm := model.FrontMatter{Title: "Login flow"}
	fm.Meta.Set(model.KeyStatus, model.String("open"))
	fm.Meta.Set(model.KeyTags, model.Strings("auth", "backend"))
	fm.Meta.Set("custom_key", model.String("custom value"))

	data, err := Marshal(fm, "# Body\n\ntext")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\ntitle: Login flow\n"))

	got, body, err := Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, fm.Title, got.Title)
	assert.Equal(t, fm.Meta, got.Meta)
	assert.Equal(t, "# Body\n\ntext", body)
}

func TestMarshal_EmptyBody(t *testing.T) {
	data, err := Marshal(model.FrontMatter{Title: "Empty"}, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "---\n"))
}
