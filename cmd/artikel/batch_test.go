package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annigue/Artikel-LLM/internal/profile"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Shakshuka vom Kocher", "shakshuka-vom-kocher"},
		{"Käsespätzle für draußen", "kaesespaetzle-fuer-draussen"},
		{"  Pad   Thai!  ", "pad-thai"},
		{"Süßkartoffel-Curry", "suesskartoffel-curry"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slugify(tc.in), tc.in)
	}
}

func TestBuildBatchRequestDefaults(t *testing.T) {
	req, out, err := buildBatchRequest(0, batchJob{Topic: "Shakshuka vom Kocher", Details: "Kocher"})
	require.NoError(t, err)

	assert.Equal(t, "shakshuka-vom-kocher.md", out)
	assert.Equal(t, 700, req.Profile.MinWords)
	assert.Equal(t, 1000, req.Profile.MaxWords)
	assert.Equal(t, profile.ModeAuto, req.Profile.Mode)
}

func TestBuildBatchRequestValidation(t *testing.T) {
	_, _, err := buildBatchRequest(0, batchJob{Topic: "Shakshuka"})
	assert.Error(t, err)

	_, _, err = buildBatchRequest(0, batchJob{Topic: "Shakshuka", Details: "Kocher", BGMode: "episch"})
	assert.Error(t, err)

	_, _, err = buildBatchRequest(0, batchJob{Topic: "Shakshuka", Details: "Kocher", MinWords: 900, MaxWords: 200})
	assert.Error(t, err)
}

func TestBuildBatchRequestModes(t *testing.T) {
	req, _, err := buildBatchRequest(0, batchJob{Topic: "a", Details: "b", BGMode: "story"})
	require.NoError(t, err)
	assert.Equal(t, profile.ModeStory, req.Profile.Mode)

	req, _, err = buildBatchRequest(0, batchJob{Topic: "a", Details: "b", BGMode: "tips"})
	require.NoError(t, err)
	assert.Equal(t, profile.ModeTips, req.Profile.Mode)
}

func TestBuildBatchRequestOutDir(t *testing.T) {
	batchOutDir = "artikel"
	defer func() { batchOutDir = "" }()

	_, out, err := buildBatchRequest(0, batchJob{Topic: "Shakshuka", Details: "Kocher", Out: "x.md"})
	require.NoError(t, err)
	assert.Equal(t, "artikel/x.md", out)
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "out.html", withSuffix("out.md", ".html"))
	assert.Equal(t, "dir/a.meta.json", withSuffix("dir/a.md", ".meta.json"))
	assert.Equal(t, "plain.html", withSuffix("plain", ".html"))
}
