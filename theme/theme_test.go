// Copyright © 2025 The failtrace authors

package theme

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCoversEveryRole(t *testing.T) {
	th := Default()
	require.Len(t, th, NumRoles)
	for _, r := range Roles() {
		out := th.Apply(r, "sample")
		assert.Contains(t, out, "sample", "role %s", r)
	}
}

func TestDefaultDecorates(t *testing.T) {
	th := Default()
	for _, r := range Roles() {
		if r == Location {
			continue // location renders undecorated by default
		}
		out := th.Apply(r, "sample")
		assert.Contains(t, out, "\x1b[", "role %s should emit an escape", r)
	}
}

func TestNoColorIsIdentityForEveryRole(t *testing.T) {
	th := NoColor()
	require.Len(t, th, NumRoles)
	for _, r := range Roles() {
		assert.Equal(t, "sample", th.Apply(r, "sample"), "role %s", r)
	}
}

func TestApplyMissingRolePassesThrough(t *testing.T) {
	var th Theme
	assert.Equal(t, "x", th.Apply(Pipe, "x"))
	assert.Equal(t, "x", Theme{}.Apply(Pipe, "x"))
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "introduction", Introduction.String())
	assert.Equal(t, "exception-type", ExceptionType.String())
	assert.Equal(t, "invalid", Role(999).String())
	for _, r := range Roles() {
		assert.NotEqual(t, "invalid", r.String())
	}
}

func TestSupportedNonFile(t *testing.T) {
	assert.False(t, Supported(&bytes.Buffer{}))
}

func TestSupportedNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, Supported(nil))
}

func TestRoleNamesAreKebabCase(t *testing.T) {
	for _, r := range Roles() {
		name := r.String()
		assert.Equal(t, strings.ToLower(name), name)
		assert.NotContains(t, name, " ")
	}
}
