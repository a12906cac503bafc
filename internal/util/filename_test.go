package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brickvault/internal/util"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Castle v2.pdf", "my-castle-v2.pdf"},
		{"front.JPG", "front.jpg"},
		{"weird   name!!.png", "weird-name.png"},
		{"___.___", "file"},
		{"no-extension", "no-extension"},
		{".hidden", "hidden"},
		{"trailing...dots...pdf", "trailing-dots.pdf"},
		{"über plan.pdf", "ber-plan.pdf"},
		{"  spaced.csv  ", "spaced.csv"},
		{"", "file"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, util.SanitizeFilename(tc.in), "input %q", tc.in)
	}
}

func TestSanitizeFilename_Idempotent(t *testing.T) {
	inputs := []string{"My Castle v2.pdf", "weird   name!!.png", "___", "a.b.c"}
	for _, in := range inputs {
		once := util.SanitizeFilename(in)
		assert.Equal(t, once, util.SanitizeFilename(once), "input %q", in)
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", util.Extension("plan.PDF"))
	assert.Equal(t, "jpg", util.Extension("a.b.jpg"))
	assert.Equal(t, "", util.Extension("noext"))
	assert.Equal(t, "", util.Extension(".hidden"))
}
