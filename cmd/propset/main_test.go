package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/propset/config"
	"github.com/c360studio/propset/publish"
)

const testConfig = `
selected_models: [Thesis, Dataset]
date_picker: true
restricted_properties_enabled: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "propset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, append([]string{"--config", writeConfig(t, testConfig)}, args...)...)
	require.NoError(t, err)
	return out
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "propset version 0.1.0 (build: dev)\n", out)
}

func TestSubcommandsRegistered(t *testing.T) {
	root := rootCmd()
	for _, name := range []string{"models", "fields", "required", "sets", "all", "form", "solr",
		"check", "export", "publish", "snapshots", "init", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestModels(t *testing.T) {
	out := run(t, "models")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 11)
	assert.Contains(t, out, "* Thesis")
	assert.Contains(t, out, "* Dataset")
	assert.Contains(t, out, "  Image")
}

func TestFields(t *testing.T) {
	out := run(t, "fields", "thesis")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 33)

	out = run(t, "fields", "Thesis", "--match", "date_*")
	assert.Equal(t, "date_created\ndate_of_award\n", out)
}

func TestFieldsErrors(t *testing.T) {
	path := writeConfig(t, testConfig)

	_, err := execute(t, "--config", path, "fields", "Painting")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model")

	_, err = execute(t, "--config", path, "fields", "Image")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a selected model")

	_, err = execute(t, "--config", path, "fields", "Thesis", "--match", "[date")
	assert.Error(t, err)
}

func TestRequired(t *testing.T) {
	out := run(t, "required", "Dataset")
	assert.Equal(t, "creator\ntitle\npublisher\ndate_published\nresource_type_general\nresource_type\n", out)
}

func TestSets(t *testing.T) {
	out := run(t, "sets")
	assert.Contains(t, out, "restricted_properties: last_access, number_of_downloads\n")
	assert.Contains(t, out, "date_picker: true\n")
	assert.Contains(t, out, "date_range: false\n")
	assert.Contains(t, out, "restricted_role: admin\n")
}

func TestAll(t *testing.T) {
	out := run(t, "all")
	assert.Contains(t, out, "last_access\n")
	assert.NotContains(t, out, "date_range\n")
}

func TestForm(t *testing.T) {
	out := run(t, "form", "Dataset")
	assert.True(t, strings.HasPrefix(out, "primary:\n  creator [required]\n"))
	assert.Contains(t, out, "  date_published [required, singular, date picker]\n")
	assert.Contains(t, out, "hidden: last_access, number_of_downloads\n")

	out = run(t, "form", "Dataset", "--role", "editor", "--role", "admin")
	assert.NotContains(t, out, "hidden:")
	assert.Contains(t, out, "  last_access [singular]\n")
}

func TestFormJSON(t *testing.T) {
	out := run(t, "form", "Thesis", "--json")

	var plan struct {
		Type    string `json:"type"`
		Primary []struct {
			Name string `json:"name"`
		} `json:"primary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "Thesis", plan.Type)
	require.Len(t, plan.Primary, 4)
	assert.Equal(t, "title", plan.Primary[0].Name)
}

func TestSolr(t *testing.T) {
	out := run(t, "solr")
	assert.Contains(t, out, "keyword: keyword_tesim keyword_sim\n")
	assert.Contains(t, out, "last_access: last_access_ssim last_access_ssi\n")
	assert.Contains(t, out, "facets: human_readable_type_sim resource_type_sim")
	assert.Contains(t, out, "index: title_tesim creator_tesim")
}

func TestCheck(t *testing.T) {
	out := run(t, "check")
	assert.True(t, strings.HasPrefix(out, "configuration OK: 2 models, "))

	bad := writeConfig(t, "selected_models: [Thesis]\nwork_types:\n  Thesis:\n    required: [isbn]\n")
	_, err := execute(t, "--config", bad, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, err = execute(t, "--config", writeConfig(t, "selected_models: []\n"), "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one model")
}

func TestExport(t *testing.T) {
	out := run(t, "export", "--format", "nt")
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.True(t, strings.HasSuffix(line, " ."), line)
	}
	assert.Contains(t, out, "<http://www.w3.org/ns/dcat#Dataset>")

	path := filepath.Join(t.TempDir(), "out.jsonld")
	run(t, "export", "--format", "jsonld", "--profile", "full", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	_, err = execute(t, "--config", writeConfig(t, testConfig), "export", "--format", "rdfxml")
	assert.Error(t, err)
}

func TestPublishDryRun(t *testing.T) {
	out := run(t, "publish", "--dry-run")

	var snap publish.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, []string{"Thesis", "Dataset"}, snap.SelectedModels)
	assert.True(t, snap.DatePicker)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "propset.yaml")

	out := run(t, "init", "--path", path)
	assert.Equal(t, "wrote "+path+"\n", out)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Thesis", "Dataset"}, cfg.SelectedModels)
	assert.Len(t, cfg.WorkTypes, 2)

	_, err = execute(t, "--config", writeConfig(t, testConfig), "init", "--path", path)
	assert.Error(t, err, "existing files are kept without --force")

	out = run(t, "init", "--path", path, "--force")
	assert.Contains(t, out, "wrote")
}
